package model

import (
	"encoding/json"
	"image"
	"strings"
	"testing"
)

// ============================================================================
// Region Tests
// ============================================================================

func TestRegionEdges(t *testing.T) {
	r := NewRegion(10, 20, 100, 50)
	if r.Right() != 110 {
		t.Errorf("Right() = %d, want 110", r.Right())
	}
	if r.Bottom() != 70 {
		t.Errorf("Bottom() = %d, want 70", r.Bottom())
	}
	if got := r.Rect(); got != image.Rect(10, 20, 110, 70) {
		t.Errorf("Rect() = %v, want (10,20)-(110,70)", got)
	}
	if c := r.Center(); c.X != 60 || c.Y != 45 {
		t.Errorf("Center() = %+v, want {60 45}", c)
	}
}

func TestClipRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)
	tests := []struct {
		name string
		in   Region
		want Region
	}{
		{"inside", Region{10, 10, 20, 20}, Region{10, 10, 20, 20}},
		{"negative origin", Region{-5, -5, 20, 20}, Region{0, 0, 15, 15}},
		{"overflow", Region{90, 70, 50, 50}, Region{90, 70, 10, 10}},
		{"outside", Region{200, 200, 10, 10}, Region{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClipRegion(tt.in, bounds)
			if got != tt.want {
				t.Errorf("ClipRegion() = %+v, want %+v", got, tt.want)
			}
			if got.X < 0 || got.Y < 0 || got.Width < 0 || got.Height < 0 {
				t.Errorf("ClipRegion() produced negative values: %+v", got)
			}
		})
	}
}

func TestRegionOverlapsAndUnion(t *testing.T) {
	a := Region{0, 0, 10, 10}
	b := Region{10, 0, 10, 10}
	c := Region{5, 5, 10, 10}

	if a.Overlaps(b) {
		t.Error("adjacent regions should not overlap")
	}
	if !a.Overlaps(c) {
		t.Error("expected a and c to overlap")
	}
	if got := a.Union(b); got != (Region{0, 0, 20, 10}) {
		t.Errorf("Union() = %+v, want {0 0 20 10}", got)
	}
	if got := (Region{}).Union(c); got != c {
		t.Errorf("Union() with empty = %+v, want %+v", got, c)
	}
	if got := a.Intersect(c); got != (Region{5, 5, 5, 5}) {
		t.Errorf("Intersect() = %+v, want {5 5 5 5}", got)
	}
	if !(Region{0, 0, 100, 100}).ContainsRegion(c) {
		t.Error("expected ContainsRegion to be true")
	}
}

func TestBoxFromPolygon(t *testing.T) {
	quad := []Point{{10.2, 5}, {40.7, 5.5}, {40, 20.1}, {10, 19.9}}
	got := BoxFromPolygon(quad)
	want := Region{X: 10, Y: 5, Width: 31, Height: 16}
	if got != want {
		t.Errorf("BoxFromPolygon() = %+v, want %+v", got, want)
	}

	if got := BoxFromPolygon(nil); !got.IsEmpty() {
		t.Errorf("BoxFromPolygon(nil) = %+v, want empty", got)
	}
}

func TestRowBand(t *testing.T) {
	band := RowBand{Boxes: []Region{{X: 5, Y: 30, Width: 10, Height: 5}, {X: 50, Y: 28, Width: 10, Height: 9}}}
	if band.Y() != 30 {
		t.Errorf("Y() = %d, want 30 (first member)", band.Y())
	}
	if got := band.Bounds(); got != (Region{X: 5, Y: 28, Width: 55, Height: 9}) {
		t.Errorf("Bounds() = %+v", got)
	}
	if (RowBand{}).Y() != 0 {
		t.Error("empty band should report Y 0")
	}
}

// ============================================================================
// Schema Tests
// ============================================================================

func TestStatementSchema(t *testing.T) {
	s := StatementSchema()
	if s.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", s.Len())
	}
	if s.Index("VOLUME") != 5 {
		t.Errorf("Index(VOLUME) = %d, want 5", s.Index("VOLUME"))
	}
	if s.Index("adj close") != -1 {
		t.Error("expected unknown field to return -1")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSchemaValidate(t *testing.T) {
	reordered := Schema{Fields: []FieldSpec{
		{Name: "Date", Kind: FieldDate},
		{Name: "Close", Kind: FieldDecimal},
		{Name: "Volume", Kind: FieldInteger},
		{Name: "Open", Kind: FieldDecimal},
		{Name: "High", Kind: FieldDecimal},
		{Name: "Low", Kind: FieldDecimal},
	}}
	if err := reordered.Validate(); err != nil {
		t.Errorf("reordered schema should validate: %v", err)
	}

	short := Schema{Fields: reordered.Fields[:5]}
	if err := short.Validate(); err == nil {
		t.Error("expected error for short schema")
	}

	dup := Schema{Fields: append([]FieldSpec(nil), reordered.Fields...)}
	dup.Fields[5] = FieldSpec{Name: "High", Kind: FieldDecimal}
	if err := dup.Validate(); err == nil {
		t.Error("expected error for duplicate field")
	}

	wrongKind := StatementSchema()
	wrongKind.Fields[5].Kind = FieldDecimal
	if err := wrongKind.Validate(); err == nil {
		t.Error("expected error for wrong kind")
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func sampleTable() *Table {
	return &Table{Rows: []Row{
		{Date: "01/04/2017", Open: 62.48, High: 62.75, Low: 62.12, Close: 62.3, Volume: 21325140},
		{Date: "01/03/2017", Open: 62.79, High: 62.84, Low: 62.13, Close: 62.58, Volume: 20655190},
	}}
}

func TestTableToCSV(t *testing.T) {
	got := sampleTable().ToCSV()
	want := "Date,Open,High,Low,Close,Volume\n" +
		"01/04/2017,62.48,62.75,62.12,62.30,21325140\n" +
		"01/03/2017,62.79,62.84,62.13,62.58,20655190\n"
	if got != want {
		t.Errorf("ToCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableToMarkdown(t *testing.T) {
	md := sampleTable().ToMarkdown()
	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 4 {
		t.Fatalf("ToMarkdown() produced %d lines, want 4", len(lines))
	}
	if lines[0] != "| Date | Open | High | Low | Close | Volume |" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "62.30") {
		t.Errorf("row line = %q, want two-decimal close", lines[2])
	}
}

func TestTableToJSON(t *testing.T) {
	data, err := sampleTable().ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded[0]["volume"].(float64) != 21325140 {
		t.Errorf("volume = %v", decoded[0]["volume"])
	}

	empty, err := NewTable().ToJSON()
	if err != nil || string(empty) != "[]" {
		t.Errorf("empty ToJSON() = %q, %v; want []", empty, err)
	}
}

func TestRowRecord(t *testing.T) {
	rec := sampleTable().Rows[0].Record()
	if rec["close"] != "62.30" {
		t.Errorf("close = %q, want 62.30", rec["close"])
	}
	if rec["volume"] != "21325140" {
		t.Errorf("volume = %q", rec["volume"])
	}

	var nilTable *Table
	if nilTable.RowCount() != 0 || !nilTable.IsEmpty() || nilTable.Records() != nil {
		t.Error("nil table should behave as empty")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{62.484, 62.48},
		{62.485000001, 62.49},
		{-1.005000001, -1.01},
		{100, 100},
		{10.125, 10.12},
		{0.125, 0.12},
		{0.375, 0.38},
		{2.675, 2.67},
		{-10.125, -10.12},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCellValue(t *testing.T) {
	if (CellValue{Kind: CellUnparseable, Raw: "x"}).OK() {
		t.Error("unparseable cell should not be OK")
	}
	if !(CellValue{Kind: CellNumber, Number: 0}).OK() {
		t.Error("zero number is still a value")
	}
	if CellDate.String() != "date" {
		t.Errorf("String() = %q", CellDate.String())
	}
}
