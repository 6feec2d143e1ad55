package notification

import "strings"

// NormalizePhone reduces the input to digits and prefixes the default
// country code when the number looks like a local 10 or 11 digit one.
// Anything else is passed through as digits only.
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 10 || len(digits) == 11 {
		return countryCode + digits
	}
	return digits
}
