package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeVendor mimics the vendor API: a summary endpoint that ships a
// trailing comma (a real observed failure mode), statement endpoints
// with null cells, and an HTML profile page.
func fakeVendor() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/v7/finance/summary/GOOD", func(w http.ResponseWriter, r *http.Request) {
		// Trailing comma: invalid JSON that the repair pass must fix.
		w.Write([]byte(`{"beta": 1.2, "marketCap": 600.0, "currentPrice": 100.0,}`))
	})
	mux.HandleFunc("/v7/finance/summary/BAD", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/v1/finance/statements/GOOD", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("type") {
		case "balance-sheet":
			w.Write([]byte(`{"periods": ["2024", "2023"], "rows": {"Total Debt": [400, null]}}`))
		case "income-statement":
			w.Write([]byte(`{"periods": ["2024"], "rows": {"Total Revenue": [1000]}}`))
		default:
			// Vendor has no cash flow statement for this ticker.
			w.WriteHeader(http.StatusNotFound)
		}
	})
	mux.HandleFunc("/profile/GOOD", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<span data-field="sector">Technology</span>
			<span data-field="industry">Widgets</span>
		</body></html>`))
	})

	return httptest.NewServer(mux)
}

func testClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, Delay: -1})
}

func TestFetchDecodesLenientlyAndScrapesProfile(t *testing.T) {
	srv := fakeVendor()
	defer srv.Close()

	data, err := testClient(srv.URL).Fetch(context.Background(), "GOOD")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Summary survived the trailing comma via the repair pass.
	if beta, ok := data.Info["beta"].(float64); !ok || beta != 1.2 {
		t.Errorf("Expected beta 1.2, got %v", data.Info["beta"])
	}

	// Statement cells map null to unavailable.
	row, ok := data.BalanceSheet.Rows["Total Debt"]
	if !ok || len(row) != 2 {
		t.Fatalf("Expected Total Debt row with 2 cells, got %v", data.BalanceSheet.Rows)
	}
	if !row[0].Valid || row[0].Value != 400 {
		t.Errorf("Expected 400 in latest cell, got %v", row[0])
	}
	if row[1].Valid {
		t.Errorf("Expected null cell to be unavailable, got %v", row[1])
	}

	// A 404 statement is empty data, not a fetch failure.
	if !data.CashFlow.Empty() {
		t.Errorf("Expected empty cash flow table, got %+v", data.CashFlow)
	}

	// Sector was absent from the summary, so the profile scrape fills it.
	if data.Info["sector"] != "Technology" {
		t.Errorf("Expected scraped sector Technology, got %v", data.Info["sector"])
	}
	if data.Info["industry"] != "Widgets" {
		t.Errorf("Expected scraped industry Widgets, got %v", data.Info["industry"])
	}
}

func TestFetchFailsOnSummaryError(t *testing.T) {
	srv := fakeVendor()
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "BAD")
	if err == nil {
		t.Fatal("Expected error for 500 summary response")
	}
	if !strings.Contains(err.Error(), "BAD") {
		t.Errorf("Error should name the ticker: %v", err)
	}
}

func TestFetchHonorsCancellation(t *testing.T) {
	srv := fakeVendor()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testClient(srv.URL).Fetch(ctx, "GOOD"); err == nil {
		t.Fatal("Expected error on cancelled context")
	}
}

func TestThrottleIsSafeForConcurrentUse(t *testing.T) {
	// One client is shared by concurrent API requests; the delay state
	// must hold up under the race detector.
	c := NewClient(Config{BaseURL: "http://localhost", Delay: time.Millisecond})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if err := c.throttle(ctx); err != nil {
					t.Errorf("throttle failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestDecodeLenient(t *testing.T) {
	var m map[string]interface{}

	if err := decodeLenient([]byte(`{"a": 1}`), &m); err != nil {
		t.Errorf("Valid JSON must decode: %v", err)
	}
	if err := decodeLenient([]byte(`{'a': 1}`), &m); err != nil {
		t.Errorf("Single-quoted JSON must decode via repair: %v", err)
	}
	if err := decodeLenient([]byte("{\n  a: 1 # comment\n}"), &m); err != nil {
		t.Errorf("Hjson must decode: %v", err)
	}
}
