package server

import (
	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

// TotalsRequest is the request body for the totals endpoint
type TotalsRequest struct {
	Items    []model.LineItem `json:"items"`
	Currency string           `json:"currency,omitempty"`
}

// TotalsResponse is the response for the totals endpoint
type TotalsResponse struct {
	Totals  model.Totals         `json:"totals"`
	Lines   []invoice.Line       `json:"lines"`
	Summary []invoice.SummaryRow `json:"summary"`
}

// FormatRequest holds raw identifiers to format
type FormatRequest struct {
	ABN      string `json:"abn,omitempty"`
	ACN      string `json:"acn,omitempty"`
	BSB      string `json:"bsb,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// FormatResponse is the response for the format endpoint
type FormatResponse struct {
	ABN      string `json:"abn"`
	ACN      string `json:"acn"`
	BSB      string `json:"bsb"`
	Phone    string `json:"phone"`
	Postcode string `json:"postcode"`
	ABNValid *bool  `json:"abn_valid,omitempty"`
	ACNValid *bool  `json:"acn_valid,omitempty"`
}

// DefaultsResponse is the response for the defaults endpoint
type DefaultsResponse struct {
	InvoiceDate   string `json:"invoiceDate"`
	InvoiceNumber string `json:"invoiceNumber"`
	DueDate       string `json:"dueDate"`
}

// ReduceRequest applies one event to invoice details
type ReduceRequest struct {
	State model.InvoiceDetails `json:"state"`
	Event invoice.Event        `json:"event"`
}

// Item list actions
const (
	ItemActionAdd    = "add"
	ItemActionRemove = "remove"
	ItemActionUpdate = "update"
	ItemActionEnsure = "ensure"
)

// ItemsRequest applies one edit to a line item list
type ItemsRequest struct {
	Items    []model.LineItem  `json:"items"`
	Action   string            `json:"action" binding:"required"`
	Index    int               `json:"index"`
	Field    invoice.ItemField `json:"field,omitempty"`
	Value    string            `json:"value,omitempty"`
	Currency string            `json:"currency,omitempty"`
}

// ItemsResponse is the edited list with its recomputed totals
type ItemsResponse struct {
	Items []model.LineItem `json:"items"`
	TotalsResponse
}

// ProcessResponse is the response for process endpoints
type ProcessResponse struct {
	Document *model.Document      `json:"document"`
	Totals   model.Totals         `json:"totals"`
	Lines    []invoice.Line       `json:"lines"`
	Summary  []invoice.SummaryRow `json:"summary"`
	Format   string               `json:"format"`
	Query    string               `json:"query"`
	Warnings []string             `json:"warnings,omitempty"`
}

// ValidationResponse is the response for validate endpoint
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// AddressRequest is the request body for address suggestions
type AddressRequest struct {
	Query string `json:"query" binding:"required"`
}

// AddressResponse is the response for address suggestions
type AddressResponse struct {
	Suggestions []model.Address `json:"suggestions"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Details  string   `json:"details,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
