package evaluate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/scantable/model"
)

// Record is one table row keyed by lower-case field name.
type Record map[string]string

// DefaultTolerance is the relative error accepted by NumericAccuracy.
const DefaultTolerance = 0.05

// NumericFields are the fields compared by NumericAccuracy.
var NumericFields = []string{
	model.FieldNameOpen,
	model.FieldNameHigh,
	model.FieldNameLow,
	model.FieldNameClose,
	model.FieldNameVolume,
}

// CharacterAccuracy returns the similarity of the raw predicted text to the
// ground truth as a percentage.
func CharacterAccuracy(pred, gt string) float64 {
	return SimilarityRatio(pred, gt) * 100
}

// WordAccuracy returns the percentage of ground-truth words that occur
// anywhere in the prediction. Both sides are case-folded and stripped of
// punctuation first. Repeated ground-truth words each count.
func WordAccuracy(pred, gt string) float64 {
	gtWords := words(gt)
	if len(gtWords) == 0 {
		return 0
	}

	predSet := make(map[string]struct{})
	for _, w := range words(pred) {
		predSet[w] = struct{}{}
	}

	matched := 0
	for _, w := range gtWords {
		if _, ok := predSet[w]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(gtWords)) * 100
}

// words normalizes s and splits it on whitespace. Only letters, numbers,
// underscores and whitespace survive normalization.
func words(s string) []string {
	s = cases.Lower(language.Und).String(norm.NFKC.String(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Fields(s)
}

// FieldAccuracy pairs rows by position and returns the percentage of
// ground-truth fields whose predicted value is equal after rounding to two
// decimals. Values that are not numbers are compared as text. A field
// missing from the prediction does not match.
func FieldAccuracy(pred, gt []Record) float64 {
	total, correct := 0, 0
	for i := 0; i < min(len(pred), len(gt)); i++ {
		for field, g := range gt[i] {
			total++
			if p, ok := pred[i][field]; ok && valuesEqual(p, g) {
				correct++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// NumericAccuracy pairs rows by position and returns the percentage of
// numeric fields within tolerance of the ground truth: |p-g| <= tolerance*g.
// Fields that are missing or do not parse do not match.
func NumericAccuracy(pred, gt []Record, tolerance float64) float64 {
	total, correct := 0, 0
	for i := 0; i < min(len(pred), len(gt)); i++ {
		for _, field := range NumericFields {
			total++
			p, okP := parseNumber(pred[i][field])
			g, okG := parseNumber(gt[i][field])
			if okP && okG && math.Abs(p-g) <= tolerance*g {
				correct++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// RowAccuracy returns the percentage of ground-truth rows whose every field
// matches the predicted row at the same position. Ground-truth rows with no
// predicted counterpart do not match.
func RowAccuracy(pred, gt []Record) float64 {
	if len(gt) == 0 {
		return 0
	}
	matched := 0
	for i := 0; i < min(len(pred), len(gt)); i++ {
		if rowMatches(pred[i], gt[i]) {
			matched++
		}
	}
	return float64(matched) / float64(len(gt)) * 100
}

func rowMatches(p, g Record) bool {
	for field, gv := range g {
		pv, ok := p[field]
		if !ok || !valuesEqual(pv, gv) {
			return false
		}
	}
	return true
}

// valuesEqual compares two cells after rounding numbers to two decimals.
// A number never equals a non-number.
func valuesEqual(a, b string) bool {
	av, aNum := roundedNumber(a)
	bv, bNum := roundedNumber(b)
	if aNum != bNum {
		return false
	}
	if aNum {
		return av == bv
	}
	return a == b
}

// roundedNumber parses s and rounds it to two decimals the way assembled
// rows are rounded.
func roundedNumber(s string) (float64, bool) {
	v, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return model.Round2(v), true
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Summary holds all five accuracy measures of one page.
type Summary struct {
	Character float64 `json:"character_accuracy"`
	Word      float64 `json:"word_accuracy"`
	Field     float64 `json:"field_accuracy"`
	Numeric   float64 `json:"numeric_accuracy"`
	Row       float64 `json:"row_accuracy"`
}

// Evaluate computes every measure. Text measures compare the page
// transcripts; table measures compare the records.
func Evaluate(predText, gtText string, pred, gt []Record) Summary {
	return Summary{
		Character: CharacterAccuracy(predText, gtText),
		Word:      WordAccuracy(predText, gtText),
		Field:     FieldAccuracy(pred, gt),
		Numeric:   NumericAccuracy(pred, gt, DefaultTolerance),
		Row:       RowAccuracy(pred, gt),
	}
}

// String returns a string representation of the summary
func (s Summary) String() string {
	return fmt.Sprintf("character %.2f%%, word %.2f%%, field %.2f%%, numeric %.2f%%, row %.2f%%",
		s.Character, s.Word, s.Field, s.Numeric, s.Row)
}

// RecordsFromRows converts assembled rows to records.
func RecordsFromRows(rows []model.Row) []Record {
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record(row.Record())
	}
	return records
}
