package bol

import (
	"strings"
	"unicode"
)

// FormatPhone strips all non-digit characters; if exactly 10 digits remain it
// reformats as NNN-NNN-NNNN, otherwise the original string passes through
// unchanged (including when empty).
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return phone
	}
	return d[0:3] + "-" + d[3:6] + "-" + d[6:10]
}

// DateOnly strips any time-of-day suffix by taking the substring before the
// first whitespace.
func DateOnly(dt string) string {
	dt = strings.TrimSpace(dt)
	if i := strings.IndexFunc(dt, unicode.IsSpace); i >= 0 {
		return dt[:i]
	}
	return dt
}

// CityLine joins city, state, and postal code as "City, State PostalCode",
// omitting empty sub-fields. All three empty yields "".
func CityLine(city, state, postal string) string {
	city = strings.TrimSpace(city)
	tail := strings.TrimSpace(strings.TrimSpace(state) + " " + strings.TrimSpace(postal))
	switch {
	case city == "":
		return tail
	case tail == "":
		return city
	default:
		return city + ", " + tail
	}
}

// str dereferences an optional string; absent becomes "".
func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
