// Package scantable provides a fluent API for recovering a financial
// statement table (date, open, high, low, close, volume) from a scanned or
// photographed page image.
//
// Basic usage:
//
//	client, err := ocr.New(ocr.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	defer client.Close()
//
//	tbl, warnings, err := scantable.Open("statement.png").
//	    WithRecognizer(client).
//	    Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", scantable.FormatWarnings(warnings))
//	}
//	fmt.Print(tbl.ToCSV())
//
// The pipeline converts the page to grayscale, finds the column bands from
// a vertical ink projection, finds row bands from dilated ink contours (or
// from clustered recognizer tokens when no contours qualify), reads the
// text of every column or cell, and assembles rows whose every field
// normalizes. Degradation is never silent: [Result] carries a [Report]
// with flags for the column fallback, the row strategy and dropped rows.
//
// For lower-level access, the raster, tables, fields and evaluate packages
// can be used directly.
package scantable

import (
	"image"
)

// Open returns an Extractor for the page image at filename. PNG, JPEG,
// TIFF, BMP and WEBP are decoded directly; for a PDF the image on the
// first page is used.
//
// Example:
//
//	tbl, warnings, err := scantable.Open("statement.png").WithRecognizer(rec).Table()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromImage creates an Extractor from an already-decoded image. A nil or
// empty image is treated like an undecodable file.
//
// Example:
//
//	img, err := reader.Load("statement.jpg")
//	if err != nil {
//	    // handle error
//	}
//	tbl, _, err := scantable.FromImage(img).WithRecognizer(rec).Table()
func FromImage(img image.Image) *Extractor {
	return &Extractor{
		img:      img,
		hasImage: true,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := scantable.Must(scantable.Open("page.png").WithRecognizer(rec).Result())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a call to Table() or Transcript() and
// panics if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	tbl := scantable.MustTable(scantable.Open("page.png").WithRecognizer(rec).Table())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
