package evaluate

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrUnsupportedFormat is returned for ground-truth files whose
	// extension is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported ground truth format")

	// ErrNoTable is returned when a ground-truth file holds no table.
	ErrNoTable = errors.New("no table found")
)

// LoadText reads a ground-truth transcript.
func LoadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read ground truth: %w", err)
	}
	return string(data), nil
}

// LoadRecords reads ground-truth rows from a .csv, .json, .html/.htm or
// .txt file. Field names are lower-cased.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ground truth: %w", err)
	}
	defer f.Close()

	var records []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		records, err = ParseCSV(f)
	case ".json":
		records, err = ParseJSON(f)
	case ".html", ".htm":
		records, err = ParseHTML(f)
	case ".txt":
		records, err = ParseText(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// ParseCSV reads records from CSV with a header row.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoTable
	}
	return recordsFromGrid(rows[0], rows[1:]), nil
}

// ParseJSON reads records from a JSON array of objects. Numbers keep their
// literal text; null values are treated as absent.
func ParseJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raw))
	for _, obj := range raw {
		rec := make(Record, len(obj))
		for k, v := range obj {
			if v == nil {
				continue
			}
			rec[normalizeKey(k)] = jsonString(v)
		}
		records = append(records, rec)
	}
	return records, nil
}

func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// ParseHTML reads records from the first <table> in an HTML document. The
// first row supplies the field names.
func ParseHTML(r io.Reader) ([]Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, ErrNoTable
	}
	rows := tableRows(table)
	if len(rows) == 0 {
		return nil, ErrNoTable
	}
	return recordsFromGrid(rows[0], rows[1:]), nil
}

// tableRows collects the cell texts of a table, looking through thead,
// tbody and tfoot sections.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					if row := tableRow(tr); len(row) > 0 {
						rows = append(rows, row)
					}
				}
			}
		case "tr":
			if row := tableRow(c); len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func tableRow(tr *html.Node) []string {
	var row []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, textContent(c))
		}
	}
	return row
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// textContent extracts all text content from a node and its descendants.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// ParseText reads a whitespace-separated table. Lines before the first
// line mentioning "date" are ignored; that line supplies the field names.
func ParseText(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	var header []string
	var rows [][]string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if header == nil {
			if strings.Contains(strings.ToLower(line), "date") {
				header = strings.Fields(line)
			}
			continue
		}
		rows = append(rows, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, ErrNoTable
	}
	return recordsFromGrid(header, rows), nil
}

// recordsFromGrid maps each row onto the header. Extra cells are ignored;
// short rows leave the trailing fields absent.
func recordsFromGrid(header []string, rows [][]string) []Record {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = normalizeKey(h)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		rec := make(Record, len(keys))
		for i := 0; i < min(len(keys), len(row)); i++ {
			if keys[i] == "" {
				continue
			}
			rec[keys[i]] = strings.TrimSpace(row[i])
		}
		records = append(records, rec)
	}
	return records
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalizeKey(k string) string {
	k = strings.TrimPrefix(k, "\ufeff")
	return strings.ToLower(strings.TrimSpace(k))
}
