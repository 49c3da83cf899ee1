package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/scantable/model"
)

// renderTable serializes the table in the configured format.
func renderTable(tbl *model.Table, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return []byte(tbl.ToCSV()), nil
	case FormatMarkdown:
		return []byte(tbl.ToMarkdown()), nil
	case FormatJSON:
		data, err := tbl.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode table: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// formatExtension returns the file extension for an output format.
func formatExtension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	default:
		return ".csv"
	}
}

// outputPath returns the output file for input: dir/<base><ext>, or next
// to the input when dir is empty.
func outputPath(input, dir, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+formatExtension(format))
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
