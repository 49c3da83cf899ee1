// Package tables recovers the row and column structure of a statement
// table from a page image.
//
// The page is segmented in two independent directions:
//
//   - [ColumnDetector] projects ink onto the x-axis and picks the dense
//     bands. It always returns the requested number of columns, splitting
//     the width evenly when the projection is inconclusive.
//   - [RowDetector] dilates ink into horizontal bars and keeps the
//     near-full-width ones. When no bar qualifies it falls back to
//     clustering recognized text boxes by y.
//
// [CellExtractor] reads each column (or each column/row intersection when
// row bands are available) with an [ocr.Recognizer], and [Assembler]
// zips the per-column strings into typed rows:
//
//	cols := tables.NewColumnDetector(cfg, logger).Detect(gray, 6)
//	texts := make([][]string, cols.Len())
//	for i, col := range cols.Regions {
//		texts[i], err = cells.Extract(gray, col)
//	}
//	asm, err := tables.NewAssembler(tables.MismatchTruncate, logger).
//		Assemble(texts, model.StatementSchema())
//
// # Configuration
//
// Every threshold lives in [Config]; [DefaultConfig] holds the values the
// detectors were tuned with. Sizes that depend on resolution are given as
// fractions of the page width or height.
//
// # Dropped rows
//
// A row whose date or any number fails to normalize is dropped and
// recorded as a [DropReason]. Rows are never emitted with missing or
// zero-filled fields.
package tables
