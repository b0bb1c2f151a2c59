package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// enrichFromProfile scrapes the vendor's HTML profile page for
// classification fields the summary endpoint left out. Only fills keys
// that are still absent; any failure is logged and swallowed.
func (c *Client) enrichFromProfile(ctx context.Context, ticker string, info map[string]interface{}) {
	body, status, err := c.get(ctx, fmt.Sprintf("%s/profile/%s", c.baseURL, url.PathEscape(ticker)))
	if err != nil || status != http.StatusOK {
		log.Debug().Str("ticker", ticker).Err(err).Int("status", status).
			Msg("Profile scrape skipped")
		return
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Debug().Str("ticker", ticker).Err(err).Msg("Profile page not parseable")
		return
	}

	for _, field := range []string{"sector", "industry", "country"} {
		if _, ok := info[field]; ok {
			continue
		}
		text := strings.TrimSpace(doc.Find(`[data-field="` + field + `"]`).First().Text())
		if text != "" {
			info[field] = text
		}
	}
}
