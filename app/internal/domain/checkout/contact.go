package checkout

import (
	"regexp"
	"strings"
)

// spaceClass is ASCII whitespace plus \v, every Unicode space separator
// and the BOM.
const spaceClass = `\s\v\p{Z}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`^[^` + spaceClass + `@]+@[^` + spaceClass + `@]+\.[^` + spaceClass + `@]+$`)
	// 0, 880 or +880, then an operator digit 3-9 and eight more digits.
	phonePattern = regexp.MustCompile(`^(\+880|880|0)1[3-9]\d{8}$`)

	phoneNoise = regexp.MustCompile(`[` + spaceClass + `-]`)
)

func ValidateEmail(v string) bool {
	return emailPattern.MatchString(v)
}

func ValidatePhone(v string) bool {
	return phonePattern.MatchString(cleanPhone(v))
}

// FormatPhone rewrites a local or 880-prefixed number to +880... Input with
// no known prefix is returned as given.
func FormatPhone(v string) string {
	cleaned := cleanPhone(v)
	switch {
	case strings.HasPrefix(cleaned, "+880"):
		return cleaned
	case strings.HasPrefix(cleaned, "880"):
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "+88" + cleaned
	default:
		return v
	}
}

func cleanPhone(v string) string {
	return phoneNoise.ReplaceAllString(v, "")
}
