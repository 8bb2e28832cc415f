package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

func validDocument() model.Document {
	return model.Document{
		Business: model.Business{
			Name:          "Acme Pty Ltd",
			Address:       model.Address{Street: "1 George St", Suburb: "Sydney", State: "NSW", Postcode: "2000"},
			ABN:           "51 824 753 556",
			ACN:           "004 085 616",
			BSB:           "062-000",
			AccountNumber: "12345678",
		},
		Client: model.Client{
			Name:    "Client Co",
			Address: model.Address{State: "VIC"},
		},
		Items: []model.LineItem{item(1, "100", model.GSTAdd)},
		Details: model.InvoiceDetails{
			InvoiceDate:   "2025-01-15",
			InvoiceNumber: "20250115-0001",
			DueDate:       "2025-02-14",
		},
	}
}

func TestValidate_Clean(t *testing.T) {
	errs, warnings := invoice.Validate(validDocument())

	assert.Empty(t, errs)
	assert.Empty(t, warnings)
}

func TestValidate_Errors(t *testing.T) {
	doc := validDocument()
	doc.Items = []model.LineItem{{
		Name:     "Refund",
		Quantity: decimal.NewFromInt(-1),
		Price:    decimal.NewFromInt(-5),
		GST:      "sometimes",
	}}

	errs, _ := invoice.Validate(doc)
	require.Len(t, errs, 3)

	var verr *model.ValidationError
	require.ErrorAs(t, errs[0], &verr)
	assert.Equal(t, "items[0].quantity", verr.Field)

	require.ErrorAs(t, errs[2], &verr)
	assert.Equal(t, "must be one of add, inclusive, no", verr.Message)
}

func TestValidate_Currency(t *testing.T) {
	doc := validDocument()
	doc.Details.Currency = "AUD"

	_, warnings := invoice.Validate(doc)
	assert.Empty(t, warnings)

	doc.Details.Currency = "XYZ"
	_, warnings = invoice.Validate(doc)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `currency "XYZ"`)
}

func TestValidate_Warnings(t *testing.T) {
	doc := validDocument()
	doc.Business.ABN = "51 824 753 557"
	doc.Client.ACN = "004 085 617"
	doc.Client.State = "Queensland"
	doc.Details.DueDate = "2025-01-01"
	doc.Items[0].Name = ""

	errs, warnings := invoice.Validate(doc)
	assert.Empty(t, errs)
	assert.Len(t, warnings, 5)
	assert.Contains(t, warnings, "due date is before invoice date")
	assert.Contains(t, warnings, "item 1 has no description")
}

func TestValidate_NoItems(t *testing.T) {
	doc := validDocument()
	doc.Items = nil

	_, warnings := invoice.Validate(doc)
	assert.Contains(t, warnings, "invoice has no items")
}
