package scantable

import (
	"fmt"
	"strings"
)

// WarningCode identifies the kind of degradation a warning reports.
type WarningCode int

const (
	// WarnNoImage means the input could not be decoded as an image. The
	// result is empty.
	WarnNoImage WarningCode = iota + 1

	// WarnColumnFallback means too few ink bands were found and the
	// columns are an even split of the page width.
	WarnColumnFallback

	// WarnNoRows means neither row pass found any rows.
	WarnNoRows

	// WarnRowBandsUnused means per-cell extraction was requested but no
	// row bands were found, so columns were read whole.
	WarnRowBandsUnused

	// WarnColumnLengthMismatch means the columns yielded different numbers
	// of strings and the table was truncated to the shortest.
	WarnColumnLengthMismatch

	// WarnRowsDropped means one or more rows were discarded because a
	// field did not normalize.
	WarnRowsDropped

	// WarnLowConfidence means the mean recognition confidence is below
	// the low-confidence threshold.
	WarnLowConfidence
)

// String returns a string representation of the code
func (c WarningCode) String() string {
	switch c {
	case WarnNoImage:
		return "no-image"
	case WarnColumnFallback:
		return "column-fallback"
	case WarnNoRows:
		return "no-rows"
	case WarnRowBandsUnused:
		return "row-bands-unused"
	case WarnColumnLengthMismatch:
		return "column-length-mismatch"
	case WarnRowsDropped:
		return "rows-dropped"
	case WarnLowConfidence:
		return "low-confidence"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue found during extraction. The result is
// still usable but may be incomplete.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns a string representation of the warning
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single human-readable line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// HasWarning reports whether warnings contains the given code.
func HasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
