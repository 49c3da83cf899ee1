package scantable

import (
	"io"
	"log/slog"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/ocr"
	"github.com/tsawler/scantable/raster"
	"github.com/tsawler/scantable/tables"
)

// Page quality thresholds.
const (
	// SignatureInkThreshold is the ink density at or above which a page is
	// likely to carry a signature or handwriting (fraction of pixels).
	SignatureInkThreshold = 0.01

	// LowConfidenceThreshold is the mean recognition confidence below
	// which a page is flagged as poorly recognized (0-1).
	LowConfidenceThreshold = 0.6
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Table layout
	columns int // 0 means the schema's field count
	schema  model.Schema

	// Recognition capability, shared and never reconfigured
	recognizer ocr.Recognizer

	// Geometry and preprocessing tunables
	config     tables.Config
	preprocess raster.PreprocessConfig
	upscale    float64 // 0 means unset

	// Processing options
	policy      tables.MismatchPolicy
	useRowBands bool

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		columns:     0,
		schema:      model.StatementSchema(),
		config:      tables.DefaultConfig(),
		preprocess:  raster.DefaultPreprocessConfig(),
		policy:      tables.MismatchTruncate,
		useRowBands: false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.schema.Fields != nil {
		newOpts.schema.Fields = make([]model.FieldSpec, len(o.schema.Fields))
		copy(newOpts.schema.Fields, o.schema.Fields)
	}
	return newOpts
}

// columnCount returns the number of columns to detect.
func (o ExtractOptions) columnCount() int {
	if o.columns > 0 {
		return o.columns
	}
	return o.schema.Len()
}

// preprocessConfig returns the full-page preprocessing configuration with
// any explicit upscale applied.
func (o ExtractOptions) preprocessConfig() raster.PreprocessConfig {
	c := o.preprocess
	if o.upscale > 0 {
		c.ScaleFactor = o.upscale
	}
	return c
}

func (o ExtractOptions) logr() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}
