package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GSTTreatment describes how GST applies to a line item
type GSTTreatment string

const (
	GSTNone      GSTTreatment = "no"        // no GST on this item
	GSTAdd       GSTTreatment = "add"       // price excludes GST, 10% added on top
	GSTInclusive GSTTreatment = "inclusive" // price already includes 10% GST
)

// GSTTreatments lists every supported treatment in display order
var GSTTreatments = []GSTTreatment{GSTAdd, GSTInclusive, GSTNone}

// Valid reports whether g is a known treatment
func (g GSTTreatment) Valid() bool {
	switch g {
	case GSTNone, GSTAdd, GSTInclusive:
		return true
	default:
		return false
	}
}

// GSTTreatmentChoices renders the known treatments for error messages
func GSTTreatmentChoices() string {
	names := make([]string, len(GSTTreatments))
	for i, g := range GSTTreatments {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

// Taxable reports whether the item attracts GST
func (g GSTTreatment) Taxable() bool {
	return g == GSTAdd || g == GSTInclusive
}

// Address holds the street address fields shared by both parties
type Address struct {
	Street   string `json:"street"`
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
}

// IsEmpty returns true when no address field is set
func (a Address) IsEmpty() bool {
	return a.Street == "" && a.Suburb == "" && a.State == "" && a.Postcode == ""
}

// Business is the party issuing the invoice
type Business struct {
	Name string `json:"name"`
	Address
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ABN           string `json:"abn"`
	ACN           string `json:"acn"`
	AccountName   string `json:"accountName"`
	BSB           string `json:"bsb"`
	AccountNumber string `json:"accountNumber"`
}

// HasBankDetails returns true when both BSB and account number are present
func (b Business) HasBankDetails() bool {
	return b.BSB != "" && b.AccountNumber != ""
}

// Client is the party being billed
type Client struct {
	Name string `json:"name"`
	Address
	ABN string `json:"abn"`
	ACN string `json:"acn"`
}

// LineItem is a single row on the invoice
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	GST      GSTTreatment    `json:"gst"`
}

// InvoiceDetails holds invoice metadata. Dates use YYYY-MM-DD.
type InvoiceDetails struct {
	InvoiceDate   string `json:"invoiceDate"`
	InvoiceNumber string `json:"invoiceNumber"`
	DueDate       string `json:"dueDate"`
	Currency      string `json:"currency"`
}

// IsEmpty returns true when no metadata field is set
func (d InvoiceDetails) IsEmpty() bool {
	return d.InvoiceDate == "" && d.InvoiceNumber == "" && d.DueDate == "" && d.Currency == ""
}

// Totals is the aggregate projection of a line item list
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	GSTTotal   decimal.Decimal `json:"gstTotal"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// HasGST returns true when the aggregate GST is strictly positive
func (t Totals) HasGST() bool {
	return t.GSTTotal.GreaterThan(decimal.Zero)
}

// Document is the complete invoice form state
type Document struct {
	Business Business       `json:"business"`
	Client   Client         `json:"client"`
	Items    []LineItem     `json:"items"`
	Details  InvoiceDetails `json:"invoice"`
}

// Currencies offered for the amount label. Empty means no label.
var Currencies = []string{"AUD", "USD", "EUR", "GBP", "JPY", "CAD", "NZD", "CNY", "INR", "SGD"}

// KnownCurrency reports whether code is one of Currencies
func KnownCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}
