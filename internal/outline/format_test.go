package outline

import "testing"

func TestRomanFormat(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{1994, "MCMXCIV"},
		{3999, "MMMCMXCIX"},
	}

	for _, tt := range tests {
		if got := RomanUpper.Format(tt.n); got != tt.want {
			t.Errorf("RomanUpper.Format(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if got := RomanLower.Format(4); got != "iv" {
		t.Errorf("RomanLower.Format(4) = %q, want iv", got)
	}
}

func TestAlphaFormat(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		if got := AlphaUpper.Format(tt.n); got != tt.want {
			t.Errorf("AlphaUpper.Format(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if got := AlphaLower.Format(27); got != "aa" {
		t.Errorf("AlphaLower.Format(27) = %q, want aa", got)
	}
}

func TestArabicFormat(t *testing.T) {
	if got := Arabic.Format(42); got != "42" {
		t.Errorf("Arabic.Format(42) = %q, want 42", got)
	}
	// No zero in roman or alphabetic numerals; fall back to decimal.
	if got := RomanUpper.Format(0); got != "0" {
		t.Errorf("RomanUpper.Format(0) = %q, want 0", got)
	}
}

func TestParsePageNumberFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    PageNumberFormat
		wantErr bool
	}{
		{"arabic", Arabic, false},
		{"", Arabic, false},
		{"roman", RomanLower, false},
		{"ROMAN-UPPER", RomanUpper, false},
		{"alpha", AlphaLower, false},
		{"alpha-upper", AlphaUpper, false},
		{"decimal", Arabic, true},
	}

	for _, tt := range tests {
		got, err := ParsePageNumberFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePageNumberFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParsePageNumberFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for f := Arabic; f <= AlphaUpper; f++ {
		got, err := ParsePageNumberFormat(f.String())
		if err != nil {
			t.Errorf("ParsePageNumberFormat(%q): %v", f.String(), err)
			continue
		}
		if got != f {
			t.Errorf("round trip %v -> %q -> %v", f, f.String(), got)
		}
	}
}

func TestNextCycles(t *testing.T) {
	seen := map[PageNumberFormat]bool{}
	f := Arabic
	for i := 0; i < 5; i++ {
		seen[f] = true
		f = f.Next()
	}
	if len(seen) != 5 {
		t.Errorf("Next() visited %d formats, want 5", len(seen))
	}
	if f != Arabic {
		t.Errorf("Next() did not wrap back to Arabic, got %v", f)
	}
}
