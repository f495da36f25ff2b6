package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"16/03/2025", true},
		{"1/3/2025", true},
		{"29/02/2024", true},
		{"31/02/2025", false},
		{"29/02/2025", false},
		{"2025/03/16", false},
		{"16-03-2025", false},
		{"", false},
		{"tomorrow", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, validDate(tc.in), "date %q", tc.in)
	}
}

func TestValidTime(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"02:30", true},
		{"2:30", true},
		{"12:00", true},
		// The pattern only checks shape, not range.
		{"25:00", true},
		{"99:99", true},
		{"2:3", false},
		{"230", false},
		{"02:30 PM", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, validTime(tc.in), "time %q", tc.in)
	}
}

func TestParseAmount(t *testing.T) {
	n, ok := parseAmount("1500")
	assert.True(t, ok)
	assert.Equal(t, int64(1500), n)

	n, ok = parseAmount("000")
	assert.True(t, ok)
	assert.Equal(t, int64(0), n)

	// Largest value that still fits the stored int64.
	n, ok = parseAmount("9223372036854775807")
	assert.True(t, ok)
	assert.Equal(t, int64(9223372036854775807), n)

	for _, in := range []string{"12a", "-5", "1.5", "", " 12", "9223372036854775808"} {
		_, ok := parseAmount(in)
		assert.False(t, ok, "amount %q", in)
	}
}

func TestParseTonnage(t *testing.T) {
	for _, in := range []string{"1", "50", "100"} {
		_, ok := parseTonnage(in)
		assert.True(t, ok, "tonnage %q", in)
	}
	for _, in := range []string{"0", "101", "-1", "ten", ""} {
		_, ok := parseTonnage(in)
		assert.False(t, ok, "tonnage %q", in)
	}
}
