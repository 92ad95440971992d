package scraper

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestExtractRecord_FullResultsTable(t *testing.T) {
	record := ExtractRecord(loadFixture(t, "results_full.html"))

	if record.Owner != "JOHN Q PUBLIC" {
		t.Fatalf("expected owner JOHN Q PUBLIC, got %q", record.Owner)
	}
	if record.OwnerAddress != "123 MAIN ST, BOSTON MA 02108" {
		t.Fatalf("unexpected owner address %q", record.OwnerAddress)
	}
	if record.BuildingValue != "$245,000" {
		t.Fatalf("expected building value $245,000, got %q", record.BuildingValue)
	}
	if record.LandValue != "$105,000" {
		t.Fatalf("expected land value $105,000, got %q", record.LandValue)
	}
	if record.OtherValue != "$0" {
		t.Fatalf("expected other value $0, got %q", record.OtherValue)
	}
	if record.TotalValue != "$350,000" {
		t.Fatalf("expected total value $350,000, got %q", record.TotalValue)
	}
	if record.AssessmentYear != "2024" {
		t.Fatalf("expected assessment year 2024, got %q", record.AssessmentYear)
	}
	if record.LotSize != "0.25 Acres" {
		t.Fatalf("expected lot size 0.25 Acres, got %q", record.LotSize)
	}
	if record.LastSalePrice != "$300,000" {
		t.Fatalf("expected last sale price $300,000, got %q", record.LastSalePrice)
	}
	if record.LastSaleDate != "06152018" {
		t.Fatalf("expected last sale date 06152018, got %q", record.LastSaleDate)
	}
	if record.UseCode != "101" {
		t.Fatalf("expected use code 101, got %q", record.UseCode)
	}
	if record.YearBuilt != "1985" {
		t.Fatalf("expected year built 1985, got %q", record.YearBuilt)
	}
	if record.FieldCount() != 12 {
		t.Fatalf("expected 12 fields, got %d", record.FieldCount())
	}
}

func TestExtractRecord_PartialPage(t *testing.T) {
	record := ExtractRecord(loadFixture(t, "results_partial.html"))

	if record.BuildingValue != "$245,000" {
		t.Fatalf("expected building value $245,000, got %q", record.BuildingValue)
	}
	if record.FieldCount() != 1 {
		t.Fatalf("expected only buildingValue set, got %d fields", record.FieldCount())
	}
}

func TestExtractRecord_MinimalTable(t *testing.T) {
	record := ExtractRecord(loadFixture(t, "results_minimal.html"))

	if record.Owner != "JOHN Q PUBLIC" {
		t.Fatalf("expected owner JOHN Q PUBLIC, got %q", record.Owner)
	}
	if record.TotalValue != "$350,000" {
		t.Fatalf("expected total value $350,000, got %q", record.TotalValue)
	}
	if record.YearBuilt != "1985" {
		t.Fatalf("expected year built 1985, got %q", record.YearBuilt)
	}
	if record.FieldCount() != 3 {
		t.Fatalf("expected 3 fields, got %d", record.FieldCount())
	}
}

func TestExtractRecord_PageFallbacksOutsideTables(t *testing.T) {
	record := ExtractRecord(loadFixture(t, "results_flat.html"))

	if record.YearBuilt != "1977" {
		t.Fatalf("expected year built 1977 via fallback, got %q", record.YearBuilt)
	}
	if record.TotalValue != "$123,400" {
		t.Fatalf("expected total value $123,400 via fallback, got %q", record.TotalValue)
	}
	if record.LotSize != "0.5 Acres" {
		t.Fatalf("expected lot size 0.5 Acres via fallback, got %q", record.LotSize)
	}
	if record.FieldCount() != 3 {
		t.Fatalf("expected 3 fallback fields, got %d", record.FieldCount())
	}
}

func TestExtractRecord_TableValueNotOverwrittenByFallback(t *testing.T) {
	html := `<html><body>
		<table><tr><td>Total Value: $350,000</td></tr></table>
		<p>Disclaimer: figures above $1 are estimates. Total Value: $999,999 shown in examples is illustrative.</p>
	</body></html>`

	record := ExtractRecord(html)
	if record.TotalValue != "$350,000" {
		t.Fatalf("table-scan value overwritten by page fallback: %q", record.TotalValue)
	}
}

func TestExtractRecord_EmptyPage(t *testing.T) {
	record := ExtractRecord("<html><body><p>No results.</p></body></html>")
	if record.FieldCount() != 0 {
		t.Fatalf("expected empty record, got %d fields", record.FieldCount())
	}
}
