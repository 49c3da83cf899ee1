package tables

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/tsawler/scantable/fields"
	"github.com/tsawler/scantable/model"
)

// MismatchPolicy decides what happens when columns recognize different
// numbers of strings.
type MismatchPolicy int

const (
	// MismatchTruncate assembles up to the shortest column.
	MismatchTruncate MismatchPolicy = iota
	// MismatchStrict refuses to assemble misaligned columns.
	MismatchStrict
)

// ErrColumnLengthMismatch is wrapped by *ColumnLengthMismatch.
var ErrColumnLengthMismatch = errors.New("column lengths differ")

// ColumnLengthMismatch reports the per-column string counts of a
// misaligned page.
type ColumnLengthMismatch struct {
	Lengths []int
}

func (e *ColumnLengthMismatch) Error() string {
	return fmt.Sprintf("%v: %v", ErrColumnLengthMismatch, e.Lengths)
}

func (e *ColumnLengthMismatch) Unwrap() error {
	return ErrColumnLengthMismatch
}

// ColumnCountError is returned when the number of columns does not match
// the schema.
type ColumnCountError struct {
	Got  int
	Want int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("got %d columns, schema has %d", e.Got, e.Want)
}

// DropReason records why a candidate row was not emitted.
type DropReason struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Raw   string `json:"raw"`
}

// String returns a string representation of the drop
func (r DropReason) String() string {
	return fmt.Sprintf("row %d: %s %q did not parse", r.Index, r.Field, r.Raw)
}

// Assembly is the outcome of assembling one page.
type Assembly struct {
	Table    *model.Table
	Dropped  []DropReason
	Mismatch bool
}

// Assembler turns per-column strings into validated rows. Row i is built
// from the i-th string of every column; a row with any unparseable field
// is dropped, never emitted partially.
type Assembler struct {
	policy MismatchPolicy
	logger *slog.Logger
}

// NewAssembler creates an assembler. A nil logger discards.
func NewAssembler(policy MismatchPolicy, logger *slog.Logger) *Assembler {
	return &Assembler{policy: policy, logger: orDiscard(logger)}
}

// Assemble builds the table. columnTexts[j] holds the strings of the
// column described by schema.Fields[j].
func (a *Assembler) Assemble(columnTexts [][]string, schema model.Schema) (*Assembly, error) {
	if len(columnTexts) != schema.Len() {
		return nil, &ColumnCountError{Got: len(columnTexts), Want: schema.Len()}
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	lengths := make([]int, len(columnTexts))
	shortest := math.MaxInt
	for j, col := range columnTexts {
		lengths[j] = len(col)
		shortest = min(shortest, len(col))
	}
	if shortest == math.MaxInt {
		shortest = 0
	}

	result := &Assembly{Table: model.NewTable()}
	for _, n := range lengths {
		if n != shortest {
			result.Mismatch = true
			break
		}
	}
	if result.Mismatch {
		if a.policy == MismatchStrict {
			return nil, &ColumnLengthMismatch{Lengths: lengths}
		}
		a.logger.Warn("column lengths differ, truncating", "lengths", lengths, "rows", shortest)
	}

	dateIdx := schema.Index(model.FieldNameDate)
	for i := 0; i < shortest; i++ {
		row, drop, ok := a.assembleRow(i, columnTexts, schema, dateIdx)
		if !ok {
			a.logger.Debug("row dropped", "index", drop.Index, "field", drop.Field, "raw", drop.Raw)
			result.Dropped = append(result.Dropped, drop)
			continue
		}
		result.Table.Rows = append(result.Table.Rows, row)
	}
	return result, nil
}

// assembleRow normalizes row i. The date is checked first, then the
// numeric fields in schema order; the first failure names the drop.
func (a *Assembler) assembleRow(i int, columnTexts [][]string, schema model.Schema, dateIdx int) (model.Row, DropReason, bool) {
	var row model.Row

	raw := columnTexts[dateIdx][i]
	date := fields.Normalize(model.FieldDate, raw)
	if !date.OK() {
		return row, DropReason{Index: i, Field: model.FieldNameDate, Raw: raw}, false
	}
	row.Date = date.Date

	for j, f := range schema.Fields {
		if j == dateIdx {
			continue
		}
		raw := columnTexts[j][i]
		v := fields.Normalize(f.Kind, raw)
		if !v.OK() || (f.Kind == model.FieldInteger && !fitsInt64(v.Number)) {
			return row, DropReason{Index: i, Field: f.Name, Raw: raw}, false
		}
		setField(&row, f.Name, v.Number)
	}
	return row, DropReason{}, true
}

func setField(row *model.Row, name string, v float64) {
	switch strings.ToLower(name) {
	case model.FieldNameOpen:
		row.Open = model.Round2(v)
	case model.FieldNameHigh:
		row.High = model.Round2(v)
	case model.FieldNameLow:
		row.Low = model.Round2(v)
	case model.FieldNameClose:
		row.Close = model.Round2(v)
	case model.FieldNameVolume:
		row.Volume = int64(v)
	}
}

func fitsInt64(v float64) bool {
	return v >= math.MinInt64 && v < math.MaxInt64
}
