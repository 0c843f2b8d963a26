package bol

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(555) 123-4567", "555-123-4567"},
		{"555.123.4567", "555-123-4567"},
		{"5551234567", "555-123-4567"},
		{"12345", "12345"},
		{"+1 (555) 123-4567", "+1 (555) 123-4567"}, // 11 digits pass through
		{"", ""},
		{"ext. 42", "ext. 42"},
	}
	for _, tc := range cases {
		if got := FormatPhone(tc.in); got != tc.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-01 08:00:00", "2024-03-01"},
		{"2024-03-01", "2024-03-01"},
		{"  2024-03-01 08:00  ", "2024-03-01"},
		{"", ""},
		{"2024-03-01T08:00:00", "2024-03-01T08:00:00"}, // no whitespace, untouched
	}
	for _, tc := range cases {
		if got := DateOnly(tc.in); got != tc.want {
			t.Errorf("DateOnly(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCityLine(t *testing.T) {
	cases := []struct {
		city, state, postal string
		want                string
	}{
		{"Gary", "IN", "46402", "Gary, IN 46402"},
		{"", "IN", "46402", "IN 46402"},
		{"Gary", "", "", "Gary"},
		{"Gary", "", "46402", "Gary, 46402"},
		{"Gary", "IN", "", "Gary, IN"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		if got := CityLine(tc.city, tc.state, tc.postal); got != tc.want {
			t.Errorf("CityLine(%q, %q, %q) = %q, want %q", tc.city, tc.state, tc.postal, got, tc.want)
		}
	}
}
