// Package format normalises Australian business identifiers for display.
//
// Every formatter strips non-digits, checks the digit count for the field
// and re-inserts separators at fixed offsets. Input that does not match is
// returned exactly as given, so partial input stays readable while it is
// being typed. Formatting its own output is a no-op.
package format

import (
	"regexp"
	"strings"
)

// Regex patterns for the canonical digit groupings
var (
	nonDigitPattern = regexp.MustCompile(`\D`)
	abnPattern      = regexp.MustCompile(`^(\d{2})(\d{3})(\d{3})(\d{3})$`)
	acnPattern      = regexp.MustCompile(`^(\d{3})(\d{3})(\d{3})$`)
	bsbPattern      = regexp.MustCompile(`^(\d{3})(\d{3})$`)
	mobilePattern   = regexp.MustCompile(`^(\d{4})(\d{3})(\d{3})$`)
	landlinePattern = regexp.MustCompile(`^(\d{2})(\d{4})(\d{4})$`)
)

// Digits returns s with every non-digit removed
func Digits(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}

// FormatABN groups an 11-digit Australian Business Number as XX XXX XXX XXX
func FormatABN(value string) string {
	return group(value, abnPattern, " ")
}

// FormatACN groups a 9-digit Australian Company Number as XXX XXX XXX
func FormatACN(value string) string {
	return group(value, acnPattern, " ")
}

// FormatBSB groups a 6-digit Bank-State-Branch code as XXX-XXX
func FormatBSB(value string) string {
	return group(value, bsbPattern, "-")
}

// FormatPhoneNumber groups a 10-digit Australian phone number.
// Mobiles (04...) use XXXX XXX XXX, other numbers XX XXXX XXXX.
// International numbers starting with + are left alone.
func FormatPhoneNumber(value string) string {
	if strings.HasPrefix(value, "+") {
		return value
	}
	if strings.HasPrefix(Digits(value), "04") {
		return group(value, mobilePattern, " ")
	}
	return group(value, landlinePattern, " ")
}

func group(value string, pattern *regexp.Regexp, sep string) string {
	matches := pattern.FindStringSubmatch(Digits(value))
	if matches == nil {
		return value
	}
	return strings.Join(matches[1:], sep)
}
