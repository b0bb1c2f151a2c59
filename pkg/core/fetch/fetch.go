// Package fetch retrieves raw per-ticker statement tables and the company
// info map from the vendor API. It is the boundary the metrics engine
// treats as an external collaborator: a fetch failure is signalled as an
// error, distinctly from "data present but empty".
package fetch

import (
	"context"

	"equity_screener/pkg/models"
)

// Fetcher supplies the raw inputs for one ticker. Implementations may hit
// the live vendor API, a local cache, or a test double.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string) (*models.CompanyData, error)
}
