package notify

import "strings"

// NormalizePhone converts a user-entered phone number to international
// format. All characters except digits and a leading + are dropped; a 00
// prefix becomes +, a single national 0 is replaced by the country calling
// code, and a bare number gets the calling code prepended.
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		b.WriteByte('+')
	}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()

	switch {
	case normalized == "":
		return ""
	case strings.HasPrefix(normalized, "+"):
		return normalized
	case strings.HasPrefix(normalized, "00"):
		return "+" + normalized[2:]
	case strings.HasPrefix(normalized, "0"):
		return countryCode + normalized[1:]
	default:
		return countryCode + normalized
	}
}
