package outline

import (
	"fmt"
	"strconv"
	"strings"
)

// PageNumberFormat selects how page numbers render in generated blocks.
type PageNumberFormat int

const (
	Arabic PageNumberFormat = iota
	RomanLower
	RomanUpper
	AlphaLower
	AlphaUpper
)

// String returns the flag-friendly name of the format.
func (f PageNumberFormat) String() string {
	switch f {
	case RomanLower:
		return "roman"
	case RomanUpper:
		return "roman-upper"
	case AlphaLower:
		return "alpha"
	case AlphaUpper:
		return "alpha-upper"
	}
	return "arabic"
}

// ParsePageNumberFormat parses a flag value into a format.
func ParsePageNumberFormat(s string) (PageNumberFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arabic", "":
		return Arabic, nil
	case "roman", "roman-lower":
		return RomanLower, nil
	case "roman-upper":
		return RomanUpper, nil
	case "alpha", "alpha-lower":
		return AlphaLower, nil
	case "alpha-upper":
		return AlphaUpper, nil
	}
	return Arabic, fmt.Errorf("unknown page number format %q", s)
}

// Next cycles to the following format, wrapping after AlphaUpper.
func (f PageNumberFormat) Next() PageNumberFormat {
	if f >= AlphaUpper {
		return Arabic
	}
	return f + 1
}

// Format renders a 1-based page number. Values below 1 fall back to plain
// decimal since roman and alphabetic numerals have no zero.
func (f PageNumberFormat) Format(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	switch f {
	case RomanLower:
		return strings.ToLower(toRoman(n))
	case RomanUpper:
		return toRoman(n)
	case AlphaLower:
		return strings.ToLower(toAlpha(n))
	case AlphaUpper:
		return toAlpha(n)
	}
	return strconv.Itoa(n)
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	var sb strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			sb.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return sb.String()
}

// toAlpha renders n in bijective base 26: 1=A, 26=Z, 27=AA.
func toAlpha(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}
