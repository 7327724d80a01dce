package clean

import (
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOK bool
	}{
		{name: "plain integer", input: "123", want: 123, wantOK: true},
		{name: "negative integer", input: "-1", want: -1, wantOK: true},
		{name: "surrounding whitespace", input: " 42 ", want: 42, wantOK: true},
		{name: "float-serialized key", input: "5.0", want: 5, wantOK: true},
		{name: "large float-serialized key", input: "368999.0", want: 368999, wantOK: true},
		{name: "fractional value rejected", input: "5.5", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "text", input: "abc", wantOK: false},
		{name: "nan rejected", input: "NaN", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseID(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseID(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      time.Time
	}{
		{
			name:      "export format with meridiem",
			input:     "4/23/2021 12:29:57 PM",
			wantValid: true,
			want:      time.Date(2021, 4, 23, 12, 29, 57, 0, time.UTC),
		},
		{
			name:      "iso format",
			input:     "2021-04-23 12:29:57",
			wantValid: true,
			want:      time.Date(2021, 4, 23, 12, 29, 57, 0, time.UTC),
		},
		{
			name:      "morning meridiem",
			input:     "1/2/2021 9:05:00 AM",
			wantValid: true,
			want:      time.Date(2021, 1, 2, 9, 5, 0, 0, time.UTC),
		},
		{name: "empty is null", input: "", wantValid: false},
		{name: "whitespace is null", input: "   ", wantValid: false},
		{name: "garbage is null", input: "not a time", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTimestamp(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("parseTimestamp(%q) valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.Valid && !got.Time.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got.Time, tt.want)
			}
		})
	}
}

func TestFloatOrDefault(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		present bool
		def     float64
		want    float64
		wantOK  bool
	}{
		{name: "value parses", raw: "12.5", present: true, def: 0, want: 12.5, wantOK: true},
		{name: "empty cell takes default", raw: "", present: true, def: -1.0, want: -1.0, wantOK: true},
		{name: "whitespace cell takes default", raw: "  ", present: true, def: 0, want: 0, wantOK: true},
		{name: "absent cell takes default", raw: "", present: false, def: 0, want: 0, wantOK: true},
		{name: "garbage fails", raw: "abc", present: true, def: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := floatOrDefault(tt.raw, tt.present, tt.def)
			if ok != tt.wantOK {
				t.Fatalf("floatOrDefault(%q, %v) ok = %v, want %v", tt.raw, tt.present, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("floatOrDefault(%q, %v) = %g, want %g", tt.raw, tt.present, got, tt.want)
			}
		})
	}
}

func TestNormalizeUpper(t *testing.T) {
	if got := normalizeUpper("  credit "); got != "CREDIT" {
		t.Errorf("normalizeUpper = %q, want CREDIT", got)
	}
}
