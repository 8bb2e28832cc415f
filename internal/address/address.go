// Package address turns place lookups into the street, suburb, state and
// postcode fields of an invoice party.
package address

import (
	"context"
	"strings"

	"github.com/rezonia/au-invoice/internal/format"
	"github.com/rezonia/au-invoice/internal/model"
)

// Place component types
const (
	TypeStreetNumber = "street_number"
	TypeRoute        = "route"
	TypeLocality     = "locality"
	TypeState        = "administrative_area_level_1"
	TypePostalCode   = "postal_code"
)

// Component is one typed part of a place lookup result
type Component struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Suggester completes a partial address typed by the user
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]model.Address, error)
}

// FromComponents maps place components onto an address. Each component
// fills the first matching field; the state uses the short name (NSW).
func FromComponents(components []Component) model.Address {
	var streetNumber, route string
	var a model.Address

	for _, c := range components {
		switch {
		case hasType(c, TypeStreetNumber):
			streetNumber = c.LongName
		case hasType(c, TypeRoute):
			route = c.LongName
		case hasType(c, TypeLocality):
			a.Suburb = c.LongName
		case hasType(c, TypeState):
			a.State = c.ShortName
		case hasType(c, TypePostalCode):
			a.Postcode = c.LongName
		}
	}

	a.Street = strings.TrimSpace(streetNumber + " " + route)
	return a
}

// Normalize tidies an address for an Australian invoice: trimmed fields,
// upper-case state and a 4-digit postcode
func Normalize(a model.Address) model.Address {
	a.Street = strings.TrimSpace(a.Street)
	a.Suburb = strings.TrimSpace(a.Suburb)
	a.State = strings.ToUpper(strings.TrimSpace(a.State))
	a.Postcode = format.SanitizeField(format.FieldPostcode, a.Postcode)
	return a
}

// IsAustralian reports whether a has a known state and a full postcode
func IsAustralian(a model.Address) bool {
	return format.IsAustralianState(a.State) && len(a.Postcode) == format.MaxPostcodeLength
}

func hasType(c Component, t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}
