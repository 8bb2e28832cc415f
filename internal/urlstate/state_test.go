package urlstate_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/au-invoice/internal/model"
	"github.com/rezonia/au-invoice/internal/urlstate"
)

var today = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func sampleDocument() model.Document {
	return model.Document{
		Business: model.Business{
			Name:          "Acme Pty Ltd",
			Address:       model.Address{Street: "1 George St", Suburb: "Sydney", State: "NSW", Postcode: "2000"},
			Phone:         "02 9876 5432",
			Email:         "accounts@acme.example",
			ABN:           "51 824 753 556",
			AccountName:   "Acme Pty Ltd",
			BSB:           "062-000",
			AccountNumber: "12345678",
		},
		Client: model.Client{
			Name:    "Client Co",
			Address: model.Address{Street: "2 Collins St", Suburb: "Melbourne", State: "VIC", Postcode: "3000"},
			ABN:     "51 824 753 556",
		},
		Items: []model.LineItem{
			{ID: "item-1", Name: "Consulting", Quantity: decimal.NewFromInt(2), Price: decimal.RequireFromString("150.50"), GST: model.GSTAdd},
			{ID: "item-2", Name: "Travel", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(88), GST: model.GSTInclusive},
		},
		Details: model.InvoiceDetails{
			InvoiceDate:   "2025-02-01",
			InvoiceNumber: "20250201-0001",
			DueDate:       "2025-03-03",
			Currency:      "AUD",
		},
	}
}

func TestEncode_FlatBusinessParams(t *testing.T) {
	values, err := urlstate.Encode(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, "Acme Pty Ltd", values.Get("businessName"))
	assert.Equal(t, "1 George St", values.Get("businessStreet"))
	assert.Equal(t, "NSW", values.Get("businessState"))
	assert.Equal(t, "51 824 753 556", values.Get("businessAbn"))
	assert.Equal(t, "062-000", values.Get("businessBsb"))
	assert.Equal(t, "12345678", values.Get("businessAccountNumber"))

	assert.Contains(t, values.Get("client"), `"name":"Client Co"`)
	assert.Contains(t, values.Get("invoice"), `"invoiceNumber":"20250201-0001"`)

	assert.Equal(t, "Consulting", values.Get("itemName_0"))
	assert.Equal(t, "2", values.Get("itemQuantity_0"))
	assert.Equal(t, "150.5", values.Get("itemPrice_0"))
	assert.Equal(t, "inclusive", values.Get("itemGst_1"))
	assert.Empty(t, values.Get("itemName_2"))
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDocument()

	query, err := urlstate.EncodeQuery(doc)
	require.NoError(t, err)

	result, err := urlstate.ParseQuery(query, today)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	got := result.Document
	assert.Equal(t, doc.Business, got.Business)
	assert.Equal(t, doc.Client, got.Client)
	assert.Equal(t, doc.Details, got.Details)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "item-1", got.Items[0].ID)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, model.GSTInclusive, got.Items[1].GST)
}

func TestParseQuery_FullURL(t *testing.T) {
	result, err := urlstate.ParseQuery("https://invoice.example/?businessName=Acme&businessAbn=51824753556#preview", today)
	require.NoError(t, err)

	assert.Equal(t, "Acme", result.Document.Business.Name)
	assert.Equal(t, "51824753556", result.Document.Business.ABN)
}

func TestDecode_DefaultsForToday(t *testing.T) {
	result := urlstate.Decode(url.Values{}, today)

	d := result.Document.Details
	assert.Equal(t, "2025-01-15", d.InvoiceDate)
	assert.Equal(t, "20250115-0001", d.InvoiceNumber)
	assert.Equal(t, "2025-02-14", d.DueDate)
	assert.Empty(t, result.Document.Items)
}

func TestDecode_OriginalNumericItems(t *testing.T) {
	values := url.Values{}
	values.Set("items", `[{"id":"item-9","name":"Widget","quantity":3,"price":19.95,"gst":"no"}]`)

	result := urlstate.Decode(values, today)
	require.Len(t, result.Document.Items, 1)

	it := result.Document.Items[0]
	assert.Equal(t, "item-9", it.ID)
	assert.True(t, it.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, it.Price.Equal(decimal.RequireFromString("19.95")))
	assert.Equal(t, model.GSTNone, it.GST)
}

func TestDecode_MalformedJSONFallsBack(t *testing.T) {
	values := url.Values{}
	values.Set("client", `{"name":`)
	values.Set("items", `not json`)
	values.Set("invoice", `[1,2]`)
	values.Set("itemName_0", "Fallback item")

	result := urlstate.Decode(values, today)

	assert.Len(t, result.Warnings, 3)
	assert.Equal(t, model.Client{}, result.Document.Client)
	require.Len(t, result.Document.Items, 1)
	assert.Equal(t, "Fallback item", result.Document.Items[0].Name)
	assert.Equal(t, "2025-01-15", result.Document.Details.InvoiceDate)
}

func TestDecode_IndexedItems(t *testing.T) {
	values := url.Values{}
	values.Set("itemName_0", "Design")
	values.Set("itemQuantity_0", "4")
	values.Set("itemPrice_0", "125.5")
	values.Set("itemGst_0", "inclusive")
	values.Set("itemName_1", "Hosting")
	// no quantity, price or gst: defaults apply
	values.Set("itemName_3", "Skipped after gap")

	result := urlstate.Decode(values, today)
	items := result.Document.Items
	require.Len(t, items, 2)

	assert.Equal(t, "Design", items[0].Name)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("125.5")))
	assert.Equal(t, model.GSTInclusive, items[0].GST)
	assert.NotEmpty(t, items[0].ID)

	assert.True(t, items[1].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, items[1].Price.IsZero())
	assert.Equal(t, model.GSTAdd, items[1].GST)
}

func TestDecode_IndexedItemExponentPrice(t *testing.T) {
	values, err := url.ParseQuery("itemName_0=A&itemQuantity_0=0&itemPrice_0=1e3")
	require.NoError(t, err)

	items := urlstate.Decode(values, today).Document.Items
	require.Len(t, items, 1)
	// a zero quantity falls back to 1 like a missing one
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(1000)))
}

func TestEncode_CapsIndexedItems(t *testing.T) {
	doc := model.Document{}
	for i := 0; i < urlstate.MaxURLItems+3; i++ {
		doc.Items = append(doc.Items, model.LineItem{Name: "x", Quantity: decimal.NewFromInt(1), GST: model.GSTNone})
	}

	values, err := urlstate.Encode(doc)
	require.NoError(t, err)

	assert.NotEmpty(t, values.Get("itemName_9"))
	assert.Empty(t, values.Get("itemName_10"))

	// The JSON form still carries every item
	result := urlstate.Decode(values, today)
	assert.Len(t, result.Document.Items, urlstate.MaxURLItems+3)
}
