package invoice

import (
	"fmt"
	"strings"

	money "github.com/rezonia/au-invoice/internal/decimal"
	"github.com/rezonia/au-invoice/internal/format"
	"github.com/rezonia/au-invoice/internal/model"
)

// Validate checks a document before it is rendered. Errors make the totals
// meaningless (negative amounts, unknown GST treatment); warnings flag data
// the invoice can still be produced with.
func Validate(doc model.Document) (errs []error, warnings []string) {
	for i, item := range doc.Items {
		field := fmt.Sprintf("items[%d]", i)
		if !money.IsNonNegative(item.Quantity) {
			errs = append(errs, model.NewValidationError(field+".quantity", item.Quantity.String(), "non_negative", "quantity must not be negative"))
		}
		if !money.IsNonNegative(item.Price) {
			errs = append(errs, model.NewValidationError(field+".price", item.Price.String(), "non_negative", "price must not be negative"))
		}
		if !item.GST.Valid() {
			errs = append(errs, model.NewValidationError(field+".gst", string(item.GST), "gst_treatment", "must be one of "+model.GSTTreatmentChoices()))
		}
		if item.Name == "" {
			warnings = append(warnings, fmt.Sprintf("item %d has no description", i+1))
		}
	}

	if len(doc.Items) == 0 {
		warnings = append(warnings, "invoice has no items")
	}

	warnings = append(warnings, partyWarnings("business", doc.Business.ABN, doc.Business.ACN, doc.Business.State)...)
	warnings = append(warnings, partyWarnings("client", doc.Client.ABN, doc.Client.ACN, doc.Client.State)...)

	if doc.Business.Name == "" {
		warnings = append(warnings, "missing business name")
	}
	if doc.Business.BSB != "" && len(format.Digits(doc.Business.BSB)) != 6 {
		warnings = append(warnings, "business BSB should have 6 digits")
	}

	if c := doc.Details.Currency; c != "" && !model.KnownCurrency(c) {
		warnings = append(warnings, fmt.Sprintf("currency %q is not one of %s", c, strings.Join(model.Currencies, ", ")))
	}

	warnings = append(warnings, dateWarnings(doc.Details)...)
	return errs, warnings
}

func partyWarnings(party, abn, acn, state string) []string {
	var warnings []string
	if abn != "" && !format.ValidABN(abn) {
		warnings = append(warnings, fmt.Sprintf("%s ABN %q fails the ABN check", party, abn))
	}
	if acn != "" && !format.ValidACN(acn) {
		warnings = append(warnings, fmt.Sprintf("%s ACN %q fails the ACN check digit", party, acn))
	}
	if state != "" && !format.IsAustralianState(state) {
		warnings = append(warnings, fmt.Sprintf("%s state %q is not an Australian state or territory", party, state))
	}
	return warnings
}

func dateWarnings(d model.InvoiceDetails) []string {
	var warnings []string

	if d.InvoiceNumber == "" {
		warnings = append(warnings, "missing invoice number")
	}

	if d.InvoiceDate == "" {
		warnings = append(warnings, "missing invoice date")
		return warnings
	}
	issued, err := ParseDate(d.InvoiceDate)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("invoice date %q is not YYYY-MM-DD", d.InvoiceDate))
		return warnings
	}

	if d.DueDate == "" {
		return warnings
	}
	due, err := ParseDate(d.DueDate)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("due date %q is not YYYY-MM-DD", d.DueDate))
		return warnings
	}
	if due.Before(issued) {
		warnings = append(warnings, "due date is before invoice date")
	}
	return warnings
}
