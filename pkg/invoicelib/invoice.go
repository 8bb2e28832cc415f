// Package invoicelib provides a public API for building Australian tax
// invoices.
//
// This package exposes the document types, the GST computation and the
// identifier formatting used by the au-invoice CLI and HTTP API.
//
// Example usage:
//
//	proc := invoicelib.NewDefaultProcessor()
//	result, err := proc.Process(ctx, strings.NewReader(link))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(invoicelib.FormatCurrency(result.Totals.GrandTotal))
package invoicelib

import (
	"time"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/au-invoice/internal/decimal"
	"github.com/rezonia/au-invoice/internal/format"
	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

// Re-export core types for public API
type (
	Document       = model.Document
	Business       = model.Business
	Client         = model.Client
	Address        = model.Address
	LineItem       = model.LineItem
	InvoiceDetails = model.InvoiceDetails
	Totals         = model.Totals
	GSTTreatment   = model.GSTTreatment
	Line           = invoice.Line
	SummaryRow     = invoice.SummaryRow
	Event          = invoice.Event
	EventType      = invoice.EventType
	ItemField      = invoice.ItemField
)

// Re-export GST treatments
const (
	GSTNone      = model.GSTNone
	GSTAdd       = model.GSTAdd
	GSTInclusive = model.GSTInclusive
)

// Re-export detail events
const (
	EventInvoiceDate   = invoice.EventInvoiceDate
	EventInvoiceNumber = invoice.EventInvoiceNumber
	EventDueDate       = invoice.EventDueDate
	EventCurrency      = invoice.EventCurrency
)

// Re-export editable item fields
const (
	ItemFieldName     = invoice.ItemFieldName
	ItemFieldQuantity = invoice.ItemFieldQuantity
	ItemFieldPrice    = invoice.ItemFieldPrice
	ItemFieldGST      = invoice.ItemFieldGST
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
	RenderError     = model.RenderError
)

// FormatABN groups an ABN as XX XXX XXX XXX
func FormatABN(value string) string { return format.FormatABN(value) }

// FormatACN groups an ACN as XXX XXX XXX
func FormatACN(value string) string { return format.FormatACN(value) }

// FormatBSB groups a BSB as XXX-XXX
func FormatBSB(value string) string { return format.FormatBSB(value) }

// FormatPhoneNumber groups an Australian landline or mobile number
func FormatPhoneNumber(value string) string { return format.FormatPhoneNumber(value) }

// ValidABN reports whether value passes the ABN check digit test
func ValidABN(value string) bool { return format.ValidABN(value) }

// ValidACN reports whether value passes the ACN check digit test
func ValidACN(value string) bool { return format.ValidACN(value) }

// ComputeTotals sums the subtotal, GST and total of items
func ComputeTotals(items []LineItem) Totals { return invoice.ComputeTotals(items) }

// ComputeLines returns the per-row values of items
func ComputeLines(items []LineItem) []Line { return invoice.ComputeLines(items) }

// SummaryRows returns the rows shown under the item table
func SummaryRows(totals Totals, currency string) []SummaryRow {
	return invoice.SummaryRows(totals, currency)
}

// FormatCurrency renders an amount as $D,DDD.DD
func FormatCurrency(d decimal.Decimal) string { return money.FormatCurrency(d) }

// DeriveInvoiceDefaults returns the invoice number and due date for a
// YYYY-MM-DD invoice date
func DeriveInvoiceDefaults(date string) (number, dueDate string, err error) {
	return invoice.DeriveInvoiceDefaults(date)
}

// NewDetails returns the details of a fresh invoice dated today
func NewDetails(today time.Time) InvoiceDetails { return invoice.NewDetails(today) }

// Reduce applies one edit to invoice details
func Reduce(state InvoiceDetails, ev Event) (InvoiceDetails, error) {
	return invoice.Reduce(state, ev)
}

// NewLineItem builds a line item from float amounts. NaN and infinite
// amounts are rejected with a ValidationError.
func NewLineItem(name string, quantity, price float64, gst GSTTreatment) (LineItem, error) {
	item := invoice.NewItem(invoice.NewItemID())
	item.Name = name
	item.GST = gst

	q, err := money.FromFloatChecked(quantity)
	if err != nil {
		return LineItem{}, model.NewValidationError("quantity", quantity, "finite", err.Error())
	}
	p, err := money.FromFloatChecked(price)
	if err != nil {
		return LineItem{}, model.NewValidationError("price", price, "finite", err.Error())
	}
	item.Quantity = q
	item.Price = p
	return item, nil
}

// NewItem returns a blank line item: quantity 1, price 0, GST added
func NewItem() LineItem { return invoice.NewItem(invoice.NewItemID()) }

// AddItem returns a copy of items with a blank item appended
func AddItem(items []LineItem) []LineItem { return invoice.AddItem(items, invoice.NewItemID()) }

// RemoveItem returns a copy of items without the item at index
func RemoveItem(items []LineItem, index int) []LineItem { return invoice.RemoveItem(items, index) }

// EnsureItem gives an empty list one blank item
func EnsureItem(items []LineItem) []LineItem { return invoice.EnsureItem(items, invoice.NewItemID()) }

// UpdateItem returns a copy of items with one field of the item at index
// set from form input
func UpdateItem(items []LineItem, index int, field ItemField, value string) ([]LineItem, error) {
	return invoice.UpdateItem(items, index, field, value)
}
