package js_printer

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		value    float64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{255, "255"},
		{1.5, "1.5"},
		{0.5, ".5"},
		{-0.25, "-.25"},
		{1000000, "1e6"},
		{125000, "125000"}, // "1.25e5" is no shorter
		{1e21, "1e21"},
		{1e-7, "1e-7"},
		{100, "100"}, // "1e2" is no shorter
	}
	for _, c := range cases {
		test.T(t, FormatNumber(c.value), c.expected)
	}
}

func TestQuoteJSON(t *testing.T) {
	cases := []struct {
		value    string
		expected string
	}{
		{"abc", `"abc"`},
		{`a"b`, `"a\"b"`},
		{"a\\b", `"a\\b"`},
		{"a\nb", `"a\nb"`},
		{"tab\there", `"tab\there"`},
		{"a'b", `"a'b"`},
		{"\x00", "\"\\u0000\""},
		{"\u2028", "\"\\u2028\""},
		{"héllo", `"héllo"`},
	}
	for _, c := range cases {
		test.T(t, QuoteJSON(c.value), c.expected)
	}
}
