package ocr

import (
	"image"

	"github.com/tsawler/scantable/model"
)

// Recognizer is the text recognition capability used by the pipeline.
//
// Recognize returns the tokens found in img. Token boxes are in the
// coordinate space of img.Bounds(), so recognizing a sub-image yields
// page coordinates. Implementations must be safe to call from several
// goroutines; a Recognizer is constructed once per process and shared.
type Recognizer interface {
	Recognize(img image.Image) ([]model.TextToken, error)
}

// RecognizerFunc adapts an ordinary function to the Recognizer interface.
type RecognizerFunc func(img image.Image) ([]model.TextToken, error)

// Recognize calls f(img).
func (f RecognizerFunc) Recognize(img image.Image) ([]model.TextToken, error) {
	return f(img)
}

// Level selects the granularity of returned tokens.
type Level int

const (
	// LevelWord returns one token per word.
	LevelWord Level = iota
	// LevelLine returns one token per text line. Column crops of a table
	// read best at line level because multi-word cells stay together.
	LevelLine
)

// Options configures a Client.
type Options struct {
	// Language(s) as a "+" separated list, e.g. "eng".
	Language string

	// Page segmentation mode (see PageSegMode constants).
	PageSegMode PageSegMode

	// Token granularity.
	Level Level
}

// DefaultOptions returns default configuration
func DefaultOptions() Options {
	return Options{
		Language:    "eng",
		PageSegMode: PSM_SINGLE_BLOCK,
		Level:       LevelLine,
	}
}

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)
