package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Row is one assembled statement record. A Row only exists when every
// field normalized; partial rows are never produced.
type Row struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Record returns the row as a string-keyed record using the lower-case
// field names of StatementSchema.
func (r Row) Record() map[string]string {
	return map[string]string{
		FieldNameDate:   r.Date,
		FieldNameOpen:   formatDecimal(r.Open),
		FieldNameHigh:   formatDecimal(r.High),
		FieldNameLow:    formatDecimal(r.Low),
		FieldNameClose:  formatDecimal(r.Close),
		FieldNameVolume: strconv.FormatInt(r.Volume, 10),
	}
}

// values returns the row's cells in statement order as display strings.
func (r Row) values() []string {
	return []string{
		r.Date,
		formatDecimal(r.Open),
		formatDecimal(r.High),
		formatDecimal(r.Low),
		formatDecimal(r.Close),
		strconv.FormatInt(r.Volume, 10),
	}
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Table is the ordered sequence of rows recovered from one page. Row order
// follows the page and is never re-sorted.
type Table struct {
	Rows []Row
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{Rows: make([]Row, 0)}
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether no rows were recovered.
func (t *Table) IsEmpty() bool {
	return t.RowCount() == 0
}

// Records converts every row with Row.Record.
func (t *Table) Records() []map[string]string {
	if t == nil {
		return nil
	}
	records := make([]map[string]string, len(t.Rows))
	for i, r := range t.Rows {
		records[i] = r.Record()
	}
	return records
}

// header returns the display header row.
func header() []string {
	return []string{"Date", "Open", "High", "Low", "Close", "Volume"}
}

// ToMarkdown converts the table to markdown format
func (t *Table) ToMarkdown() string {
	var sb strings.Builder

	h := header()
	sb.WriteString("| ")
	sb.WriteString(strings.Join(h, " | "))
	sb.WriteString(" |\n")

	// Separator
	for range h {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	if t == nil {
		return sb.String()
	}
	for _, row := range t.Rows {
		sb.WriteString("| ")
		sb.WriteString(strings.Join(row.values(), " | "))
		sb.WriteString(" |\n")
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	writeCSVLine(&sb, header())
	if t == nil {
		return sb.String()
	}
	for _, row := range t.Rows {
		writeCSVLine(&sb, row.values())
	}
	return sb.String()
}

func writeCSVLine(sb *strings.Builder, cells []string) {
	for j, text := range cells {
		// Escape quotes and wrap in quotes if necessary
		if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
			text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
		}
		sb.WriteString(text)
		if j < len(cells)-1 {
			sb.WriteString(",")
		}
	}
	sb.WriteString("\n")
}

// ToJSON encodes the rows as an indented JSON array. An empty table
// encodes as [].
func (t *Table) ToJSON() ([]byte, error) {
	rows := []Row{}
	if t != nil && t.Rows != nil {
		rows = t.Rows
	}
	return json.MarshalIndent(rows, "", "  ")
}

// Round2 rounds v to two decimal places. The exact binary value is
// rounded, with ties to even, so 10.125 becomes 10.12 and 2.675 (stored
// just below) becomes 2.67.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
