// Package fields normalizes recognized cell text into typed values.
//
// Normalization is purely syntactic. Dates are recognized by shape only
// (month 13 is accepted), and numbers go through a lossy comma/dot repair
// whose precedence is part of the output contract:
//
//  1. every comma is removed (thousands separators)
//  2. if more than one dot remains, every dot is removed
//  3. the remainder is parsed as a float
//
// The repair means a token such as "62,48" reads as 6248, not 62.48. This is
// a known fragility of comma-corrupted recognition output and is kept for
// compatibility with existing extractions.
package fields

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/scantable/model"
)

var (
	// ErrNoDate is returned when text contains no DD/MM/YYYY-shaped date.
	ErrNoDate = errors.New("no date found")

	// ErrUnparseable is returned when text cannot be read as a number.
	ErrUnparseable = errors.New("unparseable number")
)

// datePattern matches DD sep DD sep YYYY where sep is '/' or '-'.
var datePattern = regexp.MustCompile(`\d{2}[/-]\d{2}[/-]\d{4}`)

// NormalizeDate returns the first date-shaped substring of text.
func NormalizeDate(text string) (string, error) {
	match := datePattern.FindString(text)
	if match == "" {
		return "", ErrNoDate
	}
	return match, nil
}

// CleanNumber strips thousands separators and repairs multi-dot tokens
// before parsing. See the package documentation for the exact precedence.
func CleanNumber(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	if strings.Count(cleaned, ".") > 1 {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, text)
	}
	return v, nil
}

// Normalize converts raw text to a typed cell according to the field kind.
// Failures yield a CellUnparseable value, never a zero.
func Normalize(kind model.FieldKind, raw string) model.CellValue {
	switch kind {
	case model.FieldDate:
		d, err := NormalizeDate(raw)
		if err != nil {
			return model.CellValue{Kind: model.CellUnparseable, Raw: raw}
		}
		return model.CellValue{Kind: model.CellDate, Raw: raw, Date: d}
	default:
		v, err := CleanNumber(raw)
		if err != nil {
			return model.CellValue{Kind: model.CellUnparseable, Raw: raw}
		}
		return model.CellValue{Kind: model.CellNumber, Raw: raw, Number: v}
	}
}
