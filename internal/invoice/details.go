package invoice

import (
	"time"

	"github.com/rezonia/au-invoice/internal/model"
)

const (
	// DateLayout is the wire format for every invoice date
	DateLayout = "2006-01-02"

	// DisplayDateLayout is the format printed on the invoice
	DisplayDateLayout = "02-01-2006"

	// DueDays is the default payment term in calendar days
	DueDays = 30

	// NumberSuffix is appended to the compact invoice date
	NumberSuffix = "-0001"

	numberDateLayout = "20060102"
)

// EventType identifies which metadata field the user edited
type EventType string

const (
	EventInvoiceDate   EventType = "invoiceDate"
	EventInvoiceNumber EventType = "invoiceNumber"
	EventDueDate       EventType = "dueDate"
	EventCurrency      EventType = "currency"
)

// Event is a single edit to the invoice metadata
type Event struct {
	Type  EventType `json:"type"`
	Value string    `json:"value"`
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, model.NewParseError("date", s, "expected YYYY-MM-DD", err)
	}
	return t, nil
}

// DeriveInvoiceDefaults computes the invoice number and due date that
// follow from an invoice date: 20250115-0001 and 30 calendar days later.
func DeriveInvoiceDefaults(date string) (number, dueDate string, err error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", "", err
	}
	return t.Format(numberDateLayout) + NumberSuffix, t.AddDate(0, 0, DueDays).Format(DateLayout), nil
}

// NewDetails returns the metadata for a fresh invoice dated today.
// The calendar date is taken in today's own location.
func NewDetails(today time.Time) model.InvoiceDetails {
	date := today.Format(DateLayout)
	// date was produced by Format, so it always parses
	number, due, _ := DeriveInvoiceDefaults(date)
	return model.InvoiceDetails{
		InvoiceDate:   date,
		InvoiceNumber: number,
		DueDate:       due,
	}
}

// Reduce applies ev to state. Changing the invoice date re-derives the
// number and due date, overwriting earlier edits to either. Every other
// event only sets its own field. On error state is returned unchanged.
func Reduce(state model.InvoiceDetails, ev Event) (model.InvoiceDetails, error) {
	switch ev.Type {
	case EventInvoiceDate:
		number, due, err := DeriveInvoiceDefaults(ev.Value)
		if err != nil {
			return state, err
		}
		state.InvoiceDate = ev.Value
		state.InvoiceNumber = number
		state.DueDate = due
	case EventInvoiceNumber:
		state.InvoiceNumber = ev.Value
	case EventDueDate:
		state.DueDate = ev.Value
	case EventCurrency:
		state.Currency = ev.Value
	default:
		return state, model.NewValidationError("event", string(ev.Type), "known_event", "unknown event type")
	}
	return state, nil
}

// FormatDisplayDate turns 2025-01-15 into 15-01-2025.
// Empty or unparsable input is returned unchanged.
func FormatDisplayDate(s string) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(DisplayDateLayout)
}
