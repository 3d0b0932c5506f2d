package orders

import (
	"errors"
	"strings"
	"testing"

	"raankai/backend/internal/domain"
)

func testCatalog() Catalog {
	return NewCatalog([]domain.ChickenPart{
		{ID: "part-breast", Name: "Breast", PricePerKgSatang: 12000, StockKg: 50},
		{ID: "part-wing", Name: "Wing", PricePerKgSatang: 9000, StockKg: 30},
	})
}

func TestValidateComputesSnapshotTotals(t *testing.T) {
	validated, err := Validate("cust-1", []domain.OrderItem{
		{ChickenPartID: "part-breast", QuantityKg: 5},
	}, testCatalog())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if validated.TotalSatang != 60000 {
		t.Fatalf("expected total 60000 satang, got %d", validated.TotalSatang)
	}
	item := validated.Items[0]
	if item.ChickenPartName != "Breast" || item.PricePerKgSatang != 12000 {
		t.Fatalf("expected snapshot refreshed from catalog, got %+v", item)
	}
	if item.TotalSatang != 60000 {
		t.Fatalf("expected line total 60000, got %d", item.TotalSatang)
	}
}

func TestValidateDropsBlankRows(t *testing.T) {
	validated, err := Validate("cust-1", []domain.OrderItem{
		{ChickenPartID: ""},
		{ChickenPartID: "part-wing", QuantityKg: 2},
		{ChickenPartID: "  "},
	}, testCatalog())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if len(validated.Items) != 1 {
		t.Fatalf("expected 1 item after dropping blanks, got %d", len(validated.Items))
	}
}

func TestValidateNoCustomer(t *testing.T) {
	_, err := Validate("", []domain.OrderItem{
		{ChickenPartID: "part-wing", QuantityKg: 1},
	}, testCatalog())
	if err == nil || !strings.Contains(err.Error(), "no customer selected") {
		t.Fatalf("expected no-customer error, got %v", err)
	}
}

func TestValidateAllRowsBlank(t *testing.T) {
	_, err := Validate("cust-1", []domain.OrderItem{
		{ChickenPartID: ""},
	}, testCatalog())
	if err == nil || !strings.Contains(err.Error(), "no line items") {
		t.Fatalf("expected no-line-items error, got %v", err)
	}
}

func TestValidateDuplicateItem(t *testing.T) {
	_, err := Validate("cust-1", []domain.OrderItem{
		{ChickenPartID: "part-wing", QuantityKg: 1},
		{ChickenPartID: "part-wing", QuantityKg: 2},
	}, testCatalog())
	if err == nil || !strings.Contains(err.Error(), "duplicate item: Wing") {
		t.Fatalf("expected duplicate-item error with part name, got %v", err)
	}
}

func TestValidateNonPositiveQuantity(t *testing.T) {
	for _, qty := range []float64{0, -1} {
		_, err := Validate("cust-1", []domain.OrderItem{
			{ChickenPartID: "part-wing", QuantityKg: qty},
		}, testCatalog())
		if err == nil || !strings.Contains(err.Error(), "quantity must be positive") {
			t.Fatalf("qty %v: expected positive-quantity error, got %v", qty, err)
		}
	}
}

func TestValidateCollectsAllMessages(t *testing.T) {
	_, err := Validate("", []domain.OrderItem{
		{ChickenPartID: "part-wing", QuantityKg: 0},
	}, testCatalog())
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(validationErr.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %v", validationErr.Messages)
	}
}

func TestValidateSumsLineTotalsAsInts(t *testing.T) {
	// Two fractional lines: each rounds on its own before summing.
	validated, err := Validate("cust-1", []domain.OrderItem{
		{ChickenPartID: "part-breast", QuantityKg: 0.333},
		{ChickenPartID: "part-wing", QuantityKg: 0.333},
	}, testCatalog())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	want := validated.Items[0].TotalSatang + validated.Items[1].TotalSatang
	if validated.TotalSatang != want {
		t.Fatalf("total %d is not the integer sum of line totals %d", validated.TotalSatang, want)
	}
}

func TestRecomputeItemPartChange(t *testing.T) {
	items := []domain.OrderItem{
		{ChickenPartID: "part-breast", ChickenPartName: "Breast", QuantityKg: 2, PricePerKgSatang: 12000, TotalSatang: 24000},
	}

	items = RecomputeItem(items, 0, FieldPart, "part-wing", 0, testCatalog())
	item := items[0]
	if item.ChickenPartID != "part-wing" || item.ChickenPartName != "Wing" {
		t.Fatalf("expected part snapshot replaced, got %+v", item)
	}
	if item.PricePerKgSatang != 9000 || item.TotalSatang != 18000 {
		t.Fatalf("expected price re-derived from catalog, got %+v", item)
	}
	if item.QuantityKg != 2 {
		t.Fatalf("quantity should be preserved, got %v", item.QuantityKg)
	}
}

func TestRecomputeItemQuantityUsesSnapshotPrice(t *testing.T) {
	// The snapshot price differs from the catalog's current price; a quantity
	// edit must keep the snapshot.
	items := []domain.OrderItem{
		{ChickenPartID: "part-breast", ChickenPartName: "Breast", QuantityKg: 1, PricePerKgSatang: 10000, TotalSatang: 10000},
	}

	items = RecomputeItem(items, 0, FieldQuantity, "", 3, testCatalog())
	item := items[0]
	if item.PricePerKgSatang != 10000 {
		t.Fatalf("snapshot price must not be re-derived, got %d", item.PricePerKgSatang)
	}
	if item.TotalSatang != 30000 {
		t.Fatalf("expected total 30000, got %d", item.TotalSatang)
	}
}

func TestRecomputeItemIgnoresOutOfRange(t *testing.T) {
	items := []domain.OrderItem{
		{ChickenPartID: "part-breast", QuantityKg: 1, PricePerKgSatang: 12000, TotalSatang: 12000},
	}
	got := RecomputeItem(items, 5, FieldQuantity, "", 2, testCatalog())
	if got[0].TotalSatang != 12000 {
		t.Fatalf("out-of-range edit must be a no-op, got %+v", got[0])
	}
}

func TestRecomputeItemUnknownPartIsNoop(t *testing.T) {
	items := []domain.OrderItem{
		{ChickenPartID: "part-breast", QuantityKg: 1, PricePerKgSatang: 12000, TotalSatang: 12000},
	}
	got := RecomputeItem(items, 0, FieldPart, "part-missing", 0, testCatalog())
	if got[0].ChickenPartID != "part-breast" {
		t.Fatalf("unknown part edit must be a no-op, got %+v", got[0])
	}
}

func TestValidateTotalInvariantUnderReordering(t *testing.T) {
	forward := []domain.OrderItem{
		{ChickenPartID: "part-breast", QuantityKg: 1.25},
		{ChickenPartID: "part-wing", QuantityKg: 3.333},
	}
	reversed := []domain.OrderItem{forward[1], forward[0]}

	a, err := Validate("cust-1", forward, testCatalog())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	b, err := Validate("cust-1", reversed, testCatalog())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if a.TotalSatang != b.TotalSatang {
		t.Fatalf("total must not depend on item order: %d vs %d", a.TotalSatang, b.TotalSatang)
	}
}
