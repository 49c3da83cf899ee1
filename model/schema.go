package model

import (
	"fmt"
	"strings"
)

// FieldKind describes how a column's text is normalized.
type FieldKind int

const (
	FieldDate FieldKind = iota
	FieldDecimal
	FieldInteger
)

// FieldSpec names one column of the expected table.
type FieldSpec struct {
	Name string
	Kind FieldKind
}

// Schema is the ordered list of columns expected on a page, left to right.
type Schema struct {
	Fields []FieldSpec
}

// Field names of the statement schema, as used in output records.
const (
	FieldNameDate   = "date"
	FieldNameOpen   = "open"
	FieldNameHigh   = "high"
	FieldNameLow    = "low"
	FieldNameClose  = "close"
	FieldNameVolume = "volume"
)

// StatementSchema returns the daily price statement layout:
// Date, Open, High, Low, Close, Volume.
func StatementSchema() Schema {
	return Schema{Fields: []FieldSpec{
		{Name: FieldNameDate, Kind: FieldDate},
		{Name: FieldNameOpen, Kind: FieldDecimal},
		{Name: FieldNameHigh, Kind: FieldDecimal},
		{Name: FieldNameLow, Kind: FieldDecimal},
		{Name: FieldNameClose, Kind: FieldDecimal},
		{Name: FieldNameVolume, Kind: FieldInteger},
	}}
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.Fields)
}

// Index returns the position of the named field, matched
// case-insensitively, or -1.
func (s Schema) Index(name string) int {
	for i, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}

// Names returns the field names in column order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks that the schema names every statement field exactly once
// and that the field kinds agree with the Row layout.
func (s Schema) Validate() error {
	want := StatementSchema()
	if len(s.Fields) != len(want.Fields) {
		return fmt.Errorf("schema has %d fields, want %d", len(s.Fields), len(want.Fields))
	}
	for _, f := range want.Fields {
		i := s.Index(f.Name)
		if i < 0 {
			return fmt.Errorf("schema is missing field %q", f.Name)
		}
		if s.Fields[i].Kind != f.Kind {
			return fmt.Errorf("schema field %q has the wrong kind", f.Name)
		}
	}
	return nil
}
