package invoice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	money "github.com/rezonia/au-invoice/internal/decimal"
	"github.com/rezonia/au-invoice/internal/model"
)

// ItemField names an editable line item column
type ItemField string

const (
	ItemFieldName     ItemField = "name"
	ItemFieldQuantity ItemField = "quantity"
	ItemFieldPrice    ItemField = "price"
	ItemFieldGST      ItemField = "gst"
)

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// Exponent bounds of a float64; prices outside them read as 0
const (
	maxPriceExponent = 308
	minPriceExponent = -324
)

// NewItemID returns a fresh line item identifier
func NewItemID() string {
	return "item-" + uuid.NewString()
}

// NewItem returns a blank line item: quantity 1, price 0, GST added
func NewItem(id string) model.LineItem {
	return model.LineItem{
		ID:       id,
		Quantity: decimal.NewFromInt(1),
		Price:    money.Zero,
		GST:      model.GSTAdd,
	}
}

// AddItem returns a copy of items with a blank item appended
func AddItem(items []model.LineItem, id string) []model.LineItem {
	out := make([]model.LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, NewItem(id))
}

// RemoveItem returns a copy of items without the item at index.
// An out of range index leaves the list as is.
func RemoveItem(items []model.LineItem, index int) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for i, item := range items {
		if i != index {
			out = append(out, item)
		}
	}
	return out
}

// EnsureItem gives an empty list one blank item
func EnsureItem(items []model.LineItem, id string) []model.LineItem {
	if len(items) > 0 {
		return items
	}
	return []model.LineItem{NewItem(id)}
}

// UpdateItem returns a copy of items with one field of the item at index
// replaced. Quantity keeps the leading integer of value and price the
// leading number; anything unreadable becomes 0.
func UpdateItem(items []model.LineItem, index int, field ItemField, value string) ([]model.LineItem, error) {
	if index < 0 || index >= len(items) {
		return items, model.NewValidationError("index", index, "range", fmt.Sprintf("no item at index %d", index))
	}

	out := make([]model.LineItem, len(items))
	copy(out, items)
	item := out[index]

	switch field {
	case ItemFieldName:
		item.Name = value
	case ItemFieldQuantity:
		item.Quantity = ParseQuantity(value)
	case ItemFieldPrice:
		item.Price = ParsePrice(value)
	case ItemFieldGST:
		g := model.GSTTreatment(value)
		if !g.Valid() {
			return items, model.NewValidationError("gst", value, "gst_treatment", "must be one of "+model.GSTTreatmentChoices())
		}
		item.GST = g
	default:
		return items, model.NewValidationError("field", string(field), "item_field", "unknown item field")
	}

	out[index] = item
	return out, nil
}

// ParseQuantity reads the leading integer of s, or 0
func ParseQuantity(s string) decimal.Decimal {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return money.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return money.Zero
	}
	return d
}

// ParsePrice reads the leading decimal number of s, exponent included, or 0
func ParsePrice(s string) decimal.Decimal {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return money.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return money.Zero
	}
	if e := d.Exponent(); e > maxPriceExponent || e < minPriceExponent {
		return money.Zero
	}
	return d
}
