// Package portfolio assembles per-ticker metrics records into an ordered,
// sector-ranked view for the presentation layer.
package portfolio

import (
	"sort"

	"equity_screener/pkg/models"
)

// UnknownSectorRank sorts unrecognized sectors after every known one,
// deterministically.
const UnknownSectorRank = 99

// sectorRank is the fixed display order for known sectors.
var sectorRank = map[string]int{
	"Consumer Defensive":     1,
	"Consumer Cyclical":      2,
	"Healthcare":             3,
	"Technology":             4,
	"Financial Services":     5,
	"Industrials":            6,
	"Communication Services": 7,
	"Energy":                 8,
	"Real Estate":            9,
	"Utilities":              10,
	"Basic Materials":        11,
}

// RankOf returns the fixed sort rank for a sector name.
func RankOf(sector string) int {
	if r, ok := sectorRank[sector]; ok {
		return r
	}
	return UnknownSectorRank
}

// View is the ordered projection of a metrics collection: sorted by
// (sector rank, sector name, ticker) ascending. It does not own the
// records and never mutates its input.
type View struct {
	Records []models.CompanyMetrics `json:"records"`
}

// Aggregate produces the sorted view from records in fetch order. The
// sort is stable, so equal keys keep their input order; correct on a
// partial or empty collection.
func Aggregate(records []models.CompanyMetrics) View {
	sorted := make([]models.CompanyMetrics, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := RankOf(sorted[i].Sector), RankOf(sorted[j].Sector)
		if ri != rj {
			return ri < rj
		}
		if sorted[i].Sector != sorted[j].Sector {
			return sorted[i].Sector < sorted[j].Sector
		}
		return sorted[i].Ticker < sorted[j].Ticker
	})
	return View{Records: sorted}
}

// SectorGroup is one sector's slice of the view, in view order.
type SectorGroup struct {
	Sector  string                  `json:"sector"`
	Rank    int                     `json:"rank"`
	Records []models.CompanyMetrics `json:"records"`
}

// Sectors yields the view's sector groups in view order. The groups
// share the view's backing array; this is a read-only projection.
func (v View) Sectors() []SectorGroup {
	var groups []SectorGroup
	start := 0
	for i := 1; i <= len(v.Records); i++ {
		if i == len(v.Records) || v.Records[i].Sector != v.Records[start].Sector {
			groups = append(groups, SectorGroup{
				Sector:  v.Records[start].Sector,
				Rank:    RankOf(v.Records[start].Sector),
				Records: v.Records[start:i],
			})
			start = i
		}
	}
	return groups
}

// DefaultChunkSize is the display window used when the caller passes a
// non-positive size.
const DefaultChunkSize = 10

// Chunk partitions records into fixed-size windows preserving order, for
// paginated display.
func Chunk(records []models.CompanyMetrics, size int) [][]models.CompanyMetrics {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var chunks [][]models.CompanyMetrics
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
