package scantable

import (
	"fmt"
	"image"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/raster"
)

// Line is one recognized line of a full-page transcript.
type Line struct {
	Number     int          `json:"line_no"`
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	Box        model.Region `json:"-"`
}

// Transcript is the full-page recognition of a preprocessed page, in the
// recognizer's reading order.
type Transcript struct {
	Lines []Line
}

// Text returns the lines joined with newlines.
func (t *Transcript) Text() string {
	if t == nil {
		return ""
	}
	parts := make([]string, len(t.Lines))
	for i, l := range t.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// MeanConfidence returns the average line confidence, or 0 for an empty
// transcript.
func (t *Transcript) MeanConfidence() float64 {
	if t == nil || len(t.Lines) == 0 {
		return 0
	}
	var sum float64
	for _, l := range t.Lines {
		sum += l.Confidence
	}
	return sum / float64(len(t.Lines))
}

// Quality holds page measurements. They are measurements only; deciding
// what to do with a flagged page is up to the caller.
type Quality struct {
	// InkDensity is the fraction of pixels at or below raster.InkLevel.
	InkDensity float64 `json:"ink_density"`

	// SignatureLikely is set when InkDensity reaches SignatureInkThreshold.
	SignatureLikely bool `json:"signature_likely"`

	// Recognized is set when a recognizer was available and the
	// confidence fields were measured.
	Recognized bool `json:"recognized"`

	MeanConfidence float64 `json:"mean_confidence"`

	// LowConfidence is set when MeanConfidence is measured and below
	// LowConfidenceThreshold.
	LowConfidence bool `json:"low_confidence"`

	// NoImage is set when the input could not be decoded.
	NoImage bool `json:"no_image"`
}

// Transcript recognizes the whole preprocessed page and returns its lines.
// Strings shorter than two characters are dropped and confidences are
// rounded to four decimals.
//
// Example:
//
//	tr, _, err := scantable.Open("page.png").WithRecognizer(rec).Transcript()
//	fmt.Println(tr.Text())
func (e *Extractor) Transcript() (*Transcript, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if e.options.recognizer == nil {
		return nil, nil, ErrNoRecognizer
	}

	logger := e.logger()
	img, warnings, err := e.load(logger)
	if err != nil {
		return nil, nil, err
	}
	if img == nil {
		return &Transcript{}, warnings, nil
	}

	tr, err := e.transcribe(img)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("page transcribed", "lines", len(tr.Lines))
	return tr, warnings, nil
}

func (e *Extractor) transcribe(img image.Image) (*Transcript, error) {
	pre := raster.Preprocess(img, e.options.preprocessConfig())
	if pre == nil {
		return &Transcript{}, nil
	}
	tokens, err := e.options.recognizer.Recognize(pre)
	if err != nil {
		return nil, fmt.Errorf("page recognition failed: %w", err)
	}

	tr := &Transcript{Lines: make([]Line, 0, len(tokens))}
	for _, tok := range tokens {
		text := strings.TrimSpace(tok.Text)
		if utf8.RuneCountInString(text) < e.options.config.MinTextLength {
			continue
		}
		tr.Lines = append(tr.Lines, Line{
			Number:     len(tr.Lines) + 1,
			Text:       text,
			Confidence: round4(tok.Confidence),
			Box:        tok.Box,
		})
	}
	return tr, nil
}

// Quality measures ink density and, when a recognizer is configured, the
// mean recognition confidence of the page.
func (e *Extractor) Quality() (Quality, error) {
	if e.err != nil {
		return Quality{}, e.err
	}

	logger := e.logger()
	img, _, err := e.load(logger)
	if err != nil {
		return Quality{}, err
	}
	if img == nil {
		return Quality{NoImage: true}, nil
	}

	var q Quality
	q.InkDensity = round4(raster.InkDensity(raster.ToGray(img), raster.InkLevel))
	q.SignatureLikely = q.InkDensity >= SignatureInkThreshold

	if e.options.recognizer != nil {
		tr, err := e.transcribe(img)
		if err != nil {
			return Quality{}, err
		}
		q.Recognized = true
		q.MeanConfidence = round4(tr.MeanConfidence())
		q.LowConfidence = q.MeanConfidence < LowConfidenceThreshold
	}
	logger.Debug("page quality", "ink_density", q.InkDensity, "mean_confidence", q.MeanConfidence)
	return q, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
