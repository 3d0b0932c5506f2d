// Package orders validates and assembles order aggregates. It is pure: the
// caller supplies a catalog snapshot of chicken parts and gets back either a
// ValidationError or the filtered items with their computed total.
package orders

import (
	"strings"

	"raankai/backend/internal/domain"
	"raankai/backend/internal/money"
)

// ValidationError carries user-correctable input problems. Every message is
// safe to show inline in a form.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Catalog maps chicken part id to its current record.
type Catalog map[string]domain.ChickenPart

// NewCatalog builds a Catalog from a part list snapshot.
func NewCatalog(parts []domain.ChickenPart) Catalog {
	catalog := make(Catalog, len(parts))
	for _, part := range parts {
		catalog[part.ID] = part
	}
	return catalog
}

// Validated is the result of a successful Validate call: blank rows dropped,
// snapshots refreshed, per-line totals rounded individually and summed as ints.
type Validated struct {
	Items       []domain.OrderItem
	TotalSatang int64
}

// Validate checks an order draft against the catalog. Items with no selected
// part are dropped; remaining items must reference a known part, appear at
// most once, and carry a positive quantity. Name and price are re-snapshotted
// from the catalog at validation time.
func Validate(customerID string, items []domain.OrderItem, catalog Catalog) (Validated, error) {
	var messages []string

	if strings.TrimSpace(customerID) == "" {
		messages = append(messages, "no customer selected")
	}

	selected := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ChickenPartID) == "" {
			continue
		}
		selected = append(selected, item)
	}
	if len(selected) == 0 {
		messages = append(messages, "no line items")
		return Validated{}, &ValidationError{Messages: messages}
	}

	seen := make(map[string]struct{}, len(selected))
	validated := make([]domain.OrderItem, 0, len(selected))
	for _, item := range selected {
		part, known := catalog[item.ChickenPartID]
		if !known {
			messages = append(messages, "unknown item: "+item.ChickenPartID)
			continue
		}
		if _, dup := seen[item.ChickenPartID]; dup {
			messages = append(messages, "duplicate item: "+part.Name)
			continue
		}
		seen[item.ChickenPartID] = struct{}{}
		if item.QuantityKg <= 0 {
			messages = append(messages, "quantity must be positive")
			continue
		}

		item.ChickenPartName = part.Name
		item.PricePerKgSatang = part.PricePerKgSatang
		item.TotalSatang = money.LineTotal(part.PricePerKgSatang, item.QuantityKg)
		validated = append(validated, item)
	}

	if len(messages) > 0 {
		return Validated{}, &ValidationError{Messages: messages}
	}

	total := int64(0)
	for _, item := range validated {
		total += item.TotalSatang
	}
	return Validated{Items: validated, TotalSatang: total}, nil
}

// Field names the order-item field whose edit triggers recomputation.
type Field string

const (
	FieldPart     Field = "chicken_part_id"
	FieldQuantity Field = "quantity_kg"
)

// RecomputeItem applies a single-field edit to items[index] and returns the
// updated slice. A part change re-derives the denormalized name and price from
// the catalog's current record; a quantity change recomputes the total with
// the item's existing snapshot price. Any other field leaves totals untouched.
// Out-of-range indexes are ignored.
func RecomputeItem(items []domain.OrderItem, index int, field Field, partID string, quantityKg float64, catalog Catalog) []domain.OrderItem {
	if index < 0 || index >= len(items) {
		return items
	}

	item := items[index]
	switch field {
	case FieldPart:
		part, known := catalog[partID]
		if !known {
			return items
		}
		item.ChickenPartID = part.ID
		item.ChickenPartName = part.Name
		item.PricePerKgSatang = part.PricePerKgSatang
		item.TotalSatang = money.LineTotal(part.PricePerKgSatang, item.QuantityKg)
	case FieldQuantity:
		item.QuantityKg = quantityKg
		item.TotalSatang = money.LineTotal(item.PricePerKgSatang, quantityKg)
	default:
		return items
	}

	items[index] = item
	return items
}
