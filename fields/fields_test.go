package fields

import (
	"errors"
	"testing"

	"github.com/tsawler/scantable/model"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"embedded", "Ref 01/04/2017 Inv", "01/04/2017", false},
		{"dashes", "31-12-2016", "31-12-2016", false},
		{"mixed separators", "01/04-2017", "01/04-2017", false},
		{"first of two", "01/02/2017 to 03/04/2018", "01/02/2017", false},
		{"month 13 accepted", "13/13/2017", "13/13/2017", false},
		{"no date", "no date here", "", true},
		{"short year", "01/04/17", "", true},
		{"dots", "01.04.2017", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNoDate) {
					t.Errorf("NormalizeDate(%q) error = %v, want ErrNoDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"21,325,140", 21325140},
		{"62.48", 62.48},
		{"62,48", 6248},
		{"1.2.3", 123},
		{"21.325.440", 21325440},
		{"1,234.50", 1234.5},
		{" 62.58 ", 62.58},
		{"-3.5", -3.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := CleanNumber(tt.input)
			if err != nil {
				t.Fatalf("CleanNumber(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CleanNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanNumber_Unparseable(t *testing.T) {
	for _, input := range []string{"", "abc", "62.4B", "1,2a", "--", "Inf", "NaN"} {
		t.Run(input, func(t *testing.T) {
			if _, err := CleanNumber(input); !errors.Is(err, ErrUnparseable) {
				t.Errorf("CleanNumber(%q) error = %v, want ErrUnparseable", input, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	d := Normalize(model.FieldDate, "x 02/01/2017")
	if d.Kind != model.CellDate || d.Date != "02/01/2017" {
		t.Errorf("Normalize(date) = %+v", d)
	}

	n := Normalize(model.FieldDecimal, "1,000")
	if n.Kind != model.CellNumber || n.Number != 1000 {
		t.Errorf("Normalize(decimal) = %+v", n)
	}

	bad := Normalize(model.FieldInteger, "n/a")
	if bad.OK() || bad.Raw != "n/a" || bad.Number != 0 {
		t.Errorf("Normalize(bad) = %+v, want unparseable with raw text", bad)
	}

	noDate := Normalize(model.FieldDate, "Date")
	if noDate.OK() {
		t.Errorf("Normalize(header) = %+v, want unparseable", noDate)
	}
}
