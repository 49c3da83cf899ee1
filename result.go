package scantable

import (
	"log/slog"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/tables"
)

// Result is the outcome of one table extraction.
type Result struct {
	Table *model.Table

	// Columns are the column bands the text was read from.
	Columns model.ColumnSet

	// Rows are the detected row bands, top to bottom.
	Rows []model.RowBand

	Report   Report
	Warnings []Warning
}

// Report carries machine-readable degradation flags so callers can tell
// a genuinely short table from one that lost rows to detection or
// normalization failures.
type Report struct {
	// UsedColumnFallback is set when the columns are an even split of the
	// page width rather than detected ink bands.
	UsedColumnFallback bool `json:"used_column_fallback"`

	// RowStrategy names the row pass that produced the bands: "none",
	// "morphology" or "tokens".
	RowStrategy string `json:"row_strategy"`

	// RowBands is the number of row bands found.
	RowBands int `json:"row_bands"`

	// PerCell is set when text was read per column/band cell.
	PerCell bool `json:"per_cell"`

	// RowsDropped counts rows discarded because a field did not normalize.
	// The header row of a page is normally among them.
	RowsDropped int                 `json:"rows_dropped"`
	Drops       []tables.DropReason `json:"drops,omitempty"`

	// ColumnLengthMismatch is set when columns yielded different numbers
	// of strings and the table was truncated.
	ColumnLengthMismatch bool `json:"column_length_mismatch"`

	// NoImage is set when the input could not be decoded.
	NoImage bool `json:"no_image"`
}

func (r *Result) addWarning(logger *slog.Logger, code WarningCode, msg string) {
	logger.Warn(msg, "code", code.String())
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: msg})
}
