package render_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
	"github.com/rezonia/au-invoice/internal/render"
)

func sampleDocument() model.Document {
	return model.Document{
		Business: model.Business{
			Name:          "Acme Pty Ltd",
			Address:       model.Address{Street: "1 George St", Suburb: "Sydney", State: "NSW", Postcode: "2000"},
			Email:         "accounts@acme.example",
			Phone:         "02 9876 5432",
			ABN:           "51 824 753 556",
			AccountName:   "Acme Pty Ltd",
			BSB:           "062-000",
			AccountNumber: "12345678",
		},
		Client: model.Client{
			Name:    "Client Café",
			Address: model.Address{Street: "2 Collins St", Suburb: "Melbourne", State: "VIC", Postcode: "3000"},
		},
		Items: []model.LineItem{
			{Name: "Consulting", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(100), GST: model.GSTAdd},
			{Name: "Printing", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(50), GST: model.GSTNone},
		},
		Details: model.InvoiceDetails{
			InvoiceDate:   "2025-01-15",
			InvoiceNumber: "20250115-0001",
			DueDate:       "2025-02-14",
			Currency:      "AUD",
		},
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-20250115-0001.pdf", render.Filename("20250115-0001"))
}

func TestPDFRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	r := render.NewPDFRenderer()

	err := r.Render(&buf, sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "application/pdf", r.ContentType())

	info, err := render.Inspect(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, info.Valid)
	assert.Equal(t, 1, info.Pages)
	assert.Equal(t, int64(buf.Len()), info.Size)
}

func TestPDFRenderer_ManyItemsBreakPages(t *testing.T) {
	doc := sampleDocument()
	doc.Items = nil
	for i := 0; i < 80; i++ {
		doc.Items = append(doc.Items, model.LineItem{
			Name:     fmt.Sprintf("Line item number %d with a description long enough to wrap onto a second line", i+1),
			Quantity: decimal.NewFromInt(1),
			Price:    decimal.NewFromInt(10),
			GST:      model.GSTInclusive,
		})
	}

	var buf bytes.Buffer
	require.NoError(t, render.NewPDFRenderer().Render(&buf, doc))

	info, err := render.Inspect(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Greater(t, info.Pages, 1)
}

func TestPDFRenderer_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.NewPDFRenderer(render.WithPageSize("Letter")).Render(&buf, model.Document{}))

	info, err := render.Inspect(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, info.Pages)
}

func TestInspect_NotPDF(t *testing.T) {
	info, err := render.Inspect(bytes.NewReader([]byte("definitely not a pdf")))
	require.Error(t, err)
	require.NotNil(t, info)
	assert.False(t, info.Valid)
}

func TestTextRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.NewTextRenderer().Render(&buf, sampleDocument()))

	out := buf.String()
	assert.Contains(t, out, "Tax Invoice # 20250115-0001")
	assert.Contains(t, out, "Invoice Date: 15-01-2025")
	assert.Contains(t, out, "Amount AUD")
	assert.Contains(t, out, "$200.00")
	assert.Contains(t, out, "TOTAL GST(10%)")
	assert.Contains(t, out, "$270.00")
}

func TestWriteItemTable(t *testing.T) {
	doc := sampleDocument()
	totals := invoice.ComputeTotals(doc.Items)

	var buf bytes.Buffer
	require.NoError(t, render.WriteItemTable(&buf, invoice.ComputeLines(doc.Items), invoice.SummaryRows(totals, "NZD"), "NZD"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "DESCRIPTION"))
	assert.Contains(t, lines[0], "Amount NZD")
	assert.Len(t, lines, 2+len(doc.Items)+1+3)
	assert.Contains(t, lines[len(lines)-1], "Total NZD")
}

func TestTextRenderer_NoGSTBreakdown(t *testing.T) {
	doc := sampleDocument()
	doc.Items = doc.Items[1:]

	var buf bytes.Buffer
	require.NoError(t, render.NewTextRenderer().Render(&buf, doc))

	out := buf.String()
	assert.NotContains(t, out, "Subtotal")
	assert.NotContains(t, out, "TOTAL GST")
	assert.Contains(t, out, "Total AUD")
	assert.Contains(t, out, "$50.00")
}
