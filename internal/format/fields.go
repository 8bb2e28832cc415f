package format

import (
	"strings"

	"github.com/rezonia/au-invoice/internal/model"
)

// Field names an identifier-bearing form field
type Field string

const (
	FieldABN      Field = "abn"
	FieldACN      Field = "acn"
	FieldBSB      Field = "bsb"
	FieldPostcode Field = "postcode"
	FieldPhone    Field = "phone"
)

// Maximum display lengths (in characters) once separators are included
const (
	MaxABNLength      = 14
	MaxACNLength      = 11
	MaxBSBLength      = 7
	MaxPostcodeLength = 4
)

// AustralianStates lists the state and territory abbreviations
var AustralianStates = []string{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT"}

// IsAustralianState reports whether s is a known state abbreviation
func IsAustralianState(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, st := range AustralianStates {
		if st == s {
			return true
		}
	}
	return false
}

// SanitizeField formats value for field and truncates it to the field's
// maximum length. Unknown fields are returned unchanged.
func SanitizeField(field Field, value string) string {
	switch field {
	case FieldABN:
		return truncate(FormatABN(value), MaxABNLength)
	case FieldACN:
		return truncate(FormatACN(value), MaxACNLength)
	case FieldBSB:
		return truncate(FormatBSB(value), MaxBSBLength)
	case FieldPostcode:
		return truncate(Digits(value), MaxPostcodeLength)
	case FieldPhone:
		return FormatPhoneNumber(value)
	default:
		return value
	}
}

// NormalizeBusiness sanitises every identifier field of a business
func NormalizeBusiness(b model.Business) model.Business {
	b.ABN = SanitizeField(FieldABN, b.ABN)
	b.ACN = SanitizeField(FieldACN, b.ACN)
	b.BSB = SanitizeField(FieldBSB, b.BSB)
	b.Postcode = SanitizeField(FieldPostcode, b.Postcode)
	b.Phone = SanitizeField(FieldPhone, b.Phone)
	return b
}

// NormalizeClient sanitises every identifier field of a client
func NormalizeClient(c model.Client) model.Client {
	c.ABN = SanitizeField(FieldABN, c.ABN)
	c.ACN = SanitizeField(FieldACN, c.ACN)
	c.Postcode = SanitizeField(FieldPostcode, c.Postcode)
	return c
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
