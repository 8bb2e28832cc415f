// Package urlstate round-trips invoice form state through URL query
// parameters. Business details are stored as flat parameters; the client,
// items and invoice metadata as JSON values. Items are also written in an
// indexed form (itemName_0, itemQuantity_0, ...) that older links use.
package urlstate

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

// MaxURLItems is the number of items kept in the indexed form
const MaxURLItems = 10

// JSON valued parameters
const (
	ParamClient  = "client"
	ParamItems   = "items"
	ParamInvoice = "invoice"
)

// Indexed item parameter prefixes
const (
	prefixItemName     = "itemName_"
	prefixItemQuantity = "itemQuantity_"
	prefixItemPrice    = "itemPrice_"
	prefixItemGST      = "itemGst_"
)

// businessParam pairs a query parameter with its business field
type businessParam struct {
	name string
	get  func(*model.Business) *string
}

var businessParams = []businessParam{
	{"businessName", func(b *model.Business) *string { return &b.Name }},
	{"businessStreet", func(b *model.Business) *string { return &b.Street }},
	{"businessSuburb", func(b *model.Business) *string { return &b.Suburb }},
	{"businessState", func(b *model.Business) *string { return &b.State }},
	{"businessPostcode", func(b *model.Business) *string { return &b.Postcode }},
	{"businessPhone", func(b *model.Business) *string { return &b.Phone }},
	{"businessEmail", func(b *model.Business) *string { return &b.Email }},
	{"businessAbn", func(b *model.Business) *string { return &b.ABN }},
	{"businessAcn", func(b *model.Business) *string { return &b.ACN }},
	{"businessAccountName", func(b *model.Business) *string { return &b.AccountName }},
	{"businessBsb", func(b *model.Business) *string { return &b.BSB }},
	{"businessAccountNumber", func(b *model.Business) *string { return &b.AccountNumber }},
}

// Result is a decoded document plus anything that had to be skipped
type Result struct {
	Document model.Document
	Warnings []string
}

// Encode writes doc into query parameters
func Encode(doc model.Document) (url.Values, error) {
	values := url.Values{}

	b := doc.Business
	for _, p := range businessParams {
		values.Set(p.name, *p.get(&b))
	}

	if err := setJSON(values, ParamClient, doc.Client); err != nil {
		return nil, err
	}
	items := doc.Items
	if items == nil {
		items = []model.LineItem{}
	}
	if err := setJSON(values, ParamItems, items); err != nil {
		return nil, err
	}
	if err := setJSON(values, ParamInvoice, doc.Details); err != nil {
		return nil, err
	}

	for i, item := range doc.Items {
		if i >= MaxURLItems {
			break
		}
		idx := strconv.Itoa(i)
		values.Set(prefixItemName+idx, item.Name)
		values.Set(prefixItemQuantity+idx, item.Quantity.String())
		values.Set(prefixItemPrice+idx, item.Price.String())
		values.Set(prefixItemGST+idx, string(item.GST))
	}

	return values, nil
}

// EncodeQuery returns the encoded query string for doc
func EncodeQuery(doc model.Document) (string, error) {
	values, err := Encode(doc)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// Decode reads a document from query parameters. Malformed JSON values fall
// back to empty values with a warning. When no invoice metadata is present
// the defaults for today are used.
func Decode(values url.Values, today time.Time) *Result {
	result := &Result{}
	doc := &result.Document

	for _, p := range businessParams {
		*p.get(&doc.Business) = values.Get(p.name)
	}

	if !decodeJSON(values, ParamClient, &doc.Client) {
		doc.Client = model.Client{}
		result.warn("ignored malformed %s parameter", ParamClient)
	}

	if values.Get(ParamItems) != "" {
		var items []model.LineItem
		if decodeJSON(values, ParamItems, &items) {
			doc.Items = items
		} else {
			result.warn("ignored malformed %s parameter", ParamItems)
		}
	}
	if doc.Items == nil {
		doc.Items = decodeIndexedItems(values)
	}
	for i := range doc.Items {
		if doc.Items[i].ID == "" {
			doc.Items[i].ID = invoice.NewItemID()
		}
	}

	if !decodeJSON(values, ParamInvoice, &doc.Details) {
		doc.Details = model.InvoiceDetails{}
		result.warn("ignored malformed %s parameter", ParamInvoice)
	}
	if doc.Details.InvoiceDate == "" {
		defaults := invoice.NewDetails(today)
		doc.Details.InvoiceDate = defaults.InvoiceDate
		if doc.Details.InvoiceNumber == "" {
			doc.Details.InvoiceNumber = defaults.InvoiceNumber
		}
		if doc.Details.DueDate == "" {
			doc.Details.DueDate = defaults.DueDate
		}
	}

	return result
}

// ParseQuery decodes a full URL or a bare query string (with or without
// the leading '?')
func ParseQuery(raw string, today time.Time) (*Result, error) {
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		raw = raw[idx+1:]
	}
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		raw = raw[:idx]
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, model.NewParseError("query", raw, "invalid query string", err)
	}
	return Decode(values, today), nil
}

func decodeIndexedItems(values url.Values) []model.LineItem {
	var items []model.LineItem
	for i := 0; i < MaxURLItems; i++ {
		idx := strconv.Itoa(i)
		name := values.Get(prefixItemName + idx)
		if name == "" {
			break
		}

		qty := invoice.ParseQuantity(values.Get(prefixItemQuantity + idx))
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		gst := model.GSTTreatment(values.Get(prefixItemGST + idx))
		if gst == "" {
			gst = model.GSTAdd
		}

		items = append(items, model.LineItem{
			Name:     name,
			Quantity: qty,
			Price:    invoice.ParsePrice(values.Get(prefixItemPrice + idx)),
			GST:      gst,
		})
	}
	return items
}

func setJSON(values url.Values, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	values.Set(key, string(data))
	return nil
}

// decodeJSON unmarshals values[key] into v. A missing key is not an error.
func decodeJSON(values url.Values, key string, v interface{}) bool {
	raw := values.Get(key)
	if raw == "" {
		return true
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

func (r *Result) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
