package scantable

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/ocr"
	"github.com/tsawler/scantable/raster"
	"github.com/tsawler/scantable/reader"
	"github.com/tsawler/scantable/tables"
)

// ErrNoRecognizer is returned by terminal operations that need text
// recognition when no recognizer was configured.
var ErrNoRecognizer = errors.New("no recognizer configured; use WithRecognizer")

// Extractor provides a fluent interface for recovering a table from a page
// image. Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a file to load, or an image supplied directly
	filename string
	img      image.Image
	hasImage bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		img:      e.img,
		hasImage: e.hasImage,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Columns sets the number of columns to detect. It defaults to the number
// of schema fields. Fewer columns than schema fields is a
// [tables.ColumnCountError]; columns beyond the schema are detected but
// left out of the table.
//
// Example:
//
//	tbl, _, err := scantable.Open("page.png").WithRecognizer(rec).Columns(6).Table()
func (e *Extractor) Columns(n int) *Extractor {
	newExt := e.clone()
	if n <= 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("column count must be positive, got %d", n)
	}
	newExt.options.columns = n
	return newExt
}

// Schema sets the expected column layout. The statement schema
// (Date, Open, High, Low, Close, Volume) is used by default.
func (e *Extractor) Schema(schema model.Schema) *Extractor {
	newExt := e.clone()
	if err := schema.Validate(); err != nil && newExt.err == nil {
		newExt.err = err
	}
	newExt.options.schema = schema
	newExt.options = newExt.options.clone()
	return newExt
}

// WithRecognizer sets the text recognition capability. The recognizer is
// only read from; the same instance should be shared by every extraction
// in the process.
//
// Example:
//
//	client, err := ocr.New(ocr.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	defer client.Close()
//	tbl, _, err := scantable.Open("page.png").WithRecognizer(client).Table()
func (e *Extractor) WithRecognizer(rec ocr.Recognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = rec
	return newExt
}

// WithConfig replaces the geometry tunables used by column and row
// detection and by cell filtering.
func (e *Extractor) WithConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// WithPreprocess replaces the full-page preprocessing used by Transcript
// and Quality.
func (e *Extractor) WithPreprocess(config raster.PreprocessConfig) *Extractor {
	newExt := e.clone()
	newExt.options.preprocess = config
	return newExt
}

// Strict makes a column length mismatch an error instead of truncating
// the table to the shortest column.
//
// Example:
//
//	_, _, err := scantable.Open("page.png").WithRecognizer(rec).Strict().Table()
//	if errors.Is(err, tables.ErrColumnLengthMismatch) {
//	    // columns disagree on the number of rows
//	}
func (e *Extractor) Strict() *Extractor {
	newExt := e.clone()
	newExt.options.policy = tables.MismatchStrict
	return newExt
}

// UseRowBands selects per-cell extraction: when row bands are found, each
// column is read band by band instead of as one strip, so a missing cell
// drops its own row rather than shifting every row below it.
func (e *Extractor) UseRowBands(enabled bool) *Extractor {
	newExt := e.clone()
	newExt.options.useRowBands = enabled
	return newExt
}

// Upscale enlarges the page by factor before processing. It applies to
// table extraction and replaces the preprocessing scale used by
// Transcript. Small fonts recognize better when enlarged.
func (e *Extractor) Upscale(factor float64) *Extractor {
	newExt := e.clone()
	if factor <= 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("upscale factor must be positive, got %v", factor)
	}
	newExt.options.upscale = factor
	return newExt
}

// WithLogger sets the logger used for detection decisions (Debug) and
// degradations (Warn). Logging is discarded by default.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Table recovers the statement table from the page.
//
// Returns the table, any warnings encountered during processing, and an
// error if extraction failed. Warnings indicate non-fatal degradation
// (e.g., the column fallback was used or rows were dropped) where
// extraction succeeded but results may be incomplete. An undecodable image
// is not an error: it yields an empty table and a WarnNoImage warning.
//
// Example:
//
//	tbl, warnings, err := scantable.Open("statement.png").WithRecognizer(rec).Table()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", scantable.FormatWarnings(warnings))
//	}
func (e *Extractor) Table() (*model.Table, []Warning, error) {
	res, err := e.Result()
	if err != nil {
		return nil, nil, err
	}
	return res.Table, res.Warnings, nil
}

// Result runs the pipeline and returns the table together with the
// detected geometry and a machine-readable degradation report.
func (e *Extractor) Result() (*Result, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.options.recognizer == nil {
		return nil, ErrNoRecognizer
	}
	if n, want := e.options.columnCount(), e.options.schema.Len(); n < want {
		return nil, &tables.ColumnCountError{Got: n, Want: want}
	}

	logger := e.logger()
	img, warnings, err := e.load(logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Table:    model.NewTable(),
		Report:   Report{RowStrategy: tables.RowStrategyNone.String()},
		Warnings: warnings,
	}
	if img == nil {
		res.Report.NoImage = true
		return res, nil
	}

	gray := e.page(img)
	config := e.options.config
	rec := e.options.recognizer

	// Columns
	n := e.options.columnCount()
	res.Columns = tables.NewColumnDetector(config, logger).Detect(gray, n)
	if res.Columns.Fallback {
		res.Report.UsedColumnFallback = true
		res.addWarning(logger, WarnColumnFallback, fmt.Sprintf("fewer than %d ink bands found; columns split evenly", n))
	}

	// Rows
	rows, err := tables.NewRowDetector(config, rec, logger).Detect(gray)
	if err != nil {
		return nil, err
	}
	res.Rows = rows.Bands
	res.Report.RowStrategy = rows.Strategy.String()
	res.Report.RowBands = len(rows.Bands)
	if len(rows.Bands) == 0 {
		res.addWarning(logger, WarnNoRows, "no row bands found")
	}

	// Cell text
	cells := tables.NewCellExtractor(config, rec, logger)
	var columnTexts [][]string
	if e.options.useRowBands && len(rows.Bands) > 0 {
		res.Report.PerCell = true
		columnTexts, err = extractPerCell(cells, gray, res.Columns, rows.Bands)
	} else {
		if e.options.useRowBands {
			res.addWarning(logger, WarnRowBandsUnused, "no row bands for per-cell extraction; reading whole columns")
		}
		columnTexts, err = extractPerColumn(cells, gray, res.Columns)
	}
	if err != nil {
		return nil, err
	}

	// Assembly
	if want := e.options.schema.Len(); len(columnTexts) > want {
		logger.Debug("ignoring columns beyond the schema", "detected", len(columnTexts), "schema", want)
		columnTexts = columnTexts[:want]
	}
	assembly, err := tables.NewAssembler(e.options.policy, logger).Assemble(columnTexts, e.options.schema)
	if err != nil {
		return nil, err
	}
	res.Table = assembly.Table
	res.Report.Drops = assembly.Dropped
	res.Report.RowsDropped = len(assembly.Dropped)
	if assembly.Mismatch {
		res.Report.ColumnLengthMismatch = true
		res.addWarning(logger, WarnColumnLengthMismatch, fmt.Sprintf("column lengths %v differ; table truncated", columnLengths(columnTexts)))
	}
	if len(assembly.Dropped) > 0 {
		res.addWarning(logger, WarnRowsDropped, fmt.Sprintf("%d row(s) dropped", len(assembly.Dropped)))
	}

	logger.Debug("table extracted", "rows", res.Table.RowCount(), "dropped", res.Report.RowsDropped)
	return res, nil
}

// extractPerColumn reads each column as one strip. Row i of the table is
// the i-th string of every column.
func extractPerColumn(cells *tables.CellExtractor, gray *image.Gray, columns model.ColumnSet) ([][]string, error) {
	texts := make([][]string, len(columns.Regions))
	for i, col := range columns.Regions {
		t, err := cells.Extract(gray, col)
		if err != nil {
			return nil, err
		}
		texts[i] = t
	}
	return texts, nil
}

// extractPerCell reads every column/band intersection. Every column gets
// exactly one entry per band, empty when the cell had no text.
func extractPerCell(cells *tables.CellExtractor, gray *image.Gray, columns model.ColumnSet, bands []model.RowBand) ([][]string, error) {
	texts := make([][]string, len(columns.Regions))
	for i, col := range columns.Regions {
		texts[i] = make([]string, 0, len(bands))
		for _, band := range bands {
			t, err := cells.ExtractCell(gray, tables.CellRegion(col, band))
			if err != nil {
				return nil, err
			}
			texts[i] = append(texts[i], t)
		}
	}
	return texts, nil
}

func columnLengths(texts [][]string) []int {
	lengths := make([]int, len(texts))
	for i, t := range texts {
		lengths[i] = len(t)
	}
	return lengths
}

// load returns the page image. Undecodable content yields a nil image and
// a WarnNoImage warning; I/O failures are errors.
func (e *Extractor) load(logger *slog.Logger) (image.Image, []Warning, error) {
	if e.hasImage {
		if e.img == nil || e.img.Bounds().Empty() {
			return nil, []Warning{noImageWarning(logger, "empty image")}, nil
		}
		return e.img, nil, nil
	}
	if e.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}

	img, err := reader.Load(e.filename)
	if err != nil {
		if errors.Is(err, reader.ErrUndecodable) || errors.Is(err, reader.ErrNoPageImage) {
			return nil, []Warning{noImageWarning(logger, err.Error())}, nil
		}
		return nil, nil, err
	}
	return img, nil, nil
}

func noImageWarning(logger *slog.Logger, msg string) Warning {
	logger.Warn("no image", "reason", msg)
	return Warning{Code: WarnNoImage, Message: msg}
}

// page converts the image to grayscale, enlarging it when an upscale
// factor above 1 was requested.
func (e *Extractor) page(img image.Image) *image.Gray {
	gray := raster.ToGray(img)
	if f := e.options.upscale; f > 1 {
		b := gray.Bounds()
		w, h := int(float64(b.Dx())*f), int(float64(b.Dy())*f)
		gray = raster.ToGray(imaging.Resize(gray, w, h, imaging.CatmullRom))
	}
	return gray
}

func (e *Extractor) logger() *slog.Logger {
	logger := e.options.logr()
	if e.filename != "" {
		logger = logger.With("file", e.filename)
	}
	return logger
}
