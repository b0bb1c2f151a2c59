package statement

import (
	"testing"

	"equity_screener/pkg/models"
)

func TestResolveAliasOrder(t *testing.T) {
	table := models.StatementTable{
		Periods: []string{"2024", "2023"},
		Rows: map[string]models.Row{
			"B": {models.Avail(10), models.Avail(20)},
		},
	}

	// "A" is missing, "B" exists: first matching alias wins.
	row := Resolve(table, []string{"A", "B"})
	if len(row) != 2 || !row[0].Valid || row[0].Value != 10 {
		t.Errorf("Expected row B [10 20], got %v", row)
	}
}

func TestResolveMissingReturnsZeroRow(t *testing.T) {
	table := models.StatementTable{
		Periods: []string{"2024"},
		Rows:    map[string]models.Row{},
	}

	row := Resolve(table, []string{"A", "B"})
	if len(row) != 1 {
		t.Fatalf("Expected synthetic single-period row, got %d periods", len(row))
	}
	if !row[0].Valid || row[0].Value != 0 {
		t.Errorf("Expected safe zero, got %v", row[0])
	}
}

func TestLatestSkipsMissingPeriods(t *testing.T) {
	row := models.Row{models.Unavailable, models.Avail(42), models.Avail(7)}
	got := Latest(row)
	if !got.Valid || got.Value != 42 {
		t.Errorf("Expected 42 (first non-missing), got %v", got)
	}

	empty := models.Row{models.Unavailable, models.Unavailable}
	if Latest(empty).Valid {
		t.Error("Expected unavailable for all-missing row")
	}
}

func TestCoerce(t *testing.T) {
	if got := Coerce(1.5); !got.Valid || got.Value != 1.5 {
		t.Errorf("float64 coerce failed: %v", got)
	}
	if got := Coerce(3); !got.Valid || got.Value != 3 {
		t.Errorf("int coerce failed: %v", got)
	}
	if Coerce(nil).Valid {
		t.Error("nil must coerce to unavailable")
	}
	if Coerce("Technology").Valid {
		t.Error("string must coerce to unavailable")
	}
}

func TestAliasTableLookupAndMerge(t *testing.T) {
	table := DefaultAliases()

	debt := table.Lookup(ConceptTotalDebt)
	if len(debt) != 2 || debt[0] != "Total Debt" {
		t.Errorf("Unexpected default debt aliases: %v", debt)
	}

	// Unknown concept degrades to itself.
	got := table.Lookup("nonexistent")
	if len(got) != 1 || got[0] != "nonexistent" {
		t.Errorf("Expected identity fallback, got %v", got)
	}

	table.Merge(map[string][]string{ConceptTotalDebt: {"TotalDebt"}})
	if got := table.Lookup(ConceptTotalDebt); len(got) != 1 || got[0] != "TotalDebt" {
		t.Errorf("Merge should replace aliases, got %v", got)
	}
}
