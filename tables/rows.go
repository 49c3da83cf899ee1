package tables

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/ocr"
	"github.com/tsawler/scantable/raster"
)

// RowStrategy names the pass that produced a row detection.
type RowStrategy int

const (
	// RowStrategyNone means neither pass found any rows.
	RowStrategyNone RowStrategy = iota
	// RowStrategyMorphology means bands came from dilated ink contours.
	RowStrategyMorphology
	// RowStrategyTokens means bands came from clustering recognized tokens.
	RowStrategyTokens
)

// String returns a string representation of the strategy
func (s RowStrategy) String() string {
	switch s {
	case RowStrategyMorphology:
		return "morphology"
	case RowStrategyTokens:
		return "tokens"
	default:
		return "none"
	}
}

// RowDetection is the outcome of row segmentation.
type RowDetection struct {
	Bands    []model.RowBand
	Strategy RowStrategy
}

// RowDetector finds horizontal row bands. The morphological pass runs
// first; the recognizer pass runs only when it finds no candidate boxes.
type RowDetector struct {
	config     Config
	recognizer ocr.Recognizer
	logger     *slog.Logger
}

// NewRowDetector creates a row detector. The recognizer may be nil, in
// which case the token pass is skipped. A nil logger discards.
func NewRowDetector(config Config, recognizer ocr.Recognizer, logger *slog.Logger) *RowDetector {
	return &RowDetector{config: config, recognizer: recognizer, logger: orDiscard(logger)}
}

// Detect returns the row bands of the page, top to bottom. Finding no rows
// is not an error; a recognizer failure in the token pass is.
func (d *RowDetector) Detect(gray *image.Gray) (RowDetection, error) {
	if gray == nil || gray.Bounds().Empty() {
		return RowDetection{}, nil
	}

	if boxes := d.morphologyBoxes(gray); len(boxes) > 0 {
		bands := clusterRows(boxes, float64(gray.Bounds().Dy())*d.config.RowMergeFrac)
		d.logger.Debug("rows detected", "strategy", RowStrategyMorphology, "boxes", len(boxes), "bands", len(bands))
		return RowDetection{Bands: bands, Strategy: RowStrategyMorphology}, nil
	}

	if d.recognizer == nil {
		return RowDetection{}, nil
	}

	boxes, err := d.tokenBoxes(gray)
	if err != nil {
		return RowDetection{}, err
	}
	if len(boxes) == 0 {
		d.logger.Debug("no rows detected")
		return RowDetection{}, nil
	}
	bands := clusterRows(boxes, float64(gray.Bounds().Dy())*d.config.TokenMergeFrac)
	d.logger.Debug("rows detected", "strategy", RowStrategyTokens, "boxes", len(boxes), "bands", len(bands))
	return RowDetection{Bands: bands, Strategy: RowStrategyTokens}, nil
}

// morphologyBoxes smears each text line into a solid bar with a wide, flat
// kernel and keeps the bars that look like full-width table rows.
func (d *RowDetector) morphologyBoxes(gray *image.Gray) []model.Region {
	bounds := gray.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	mask := raster.AdaptiveThreshold(gray, raster.MeanC, d.config.RowBlockSize, d.config.RowC)
	kernel := raster.Kernel{
		Width:  max(int(w*d.config.RowKernelWidthFrac), d.config.RowKernelMinWidth),
		Height: max(int(h*d.config.RowKernelHeightFrac), d.config.RowKernelMinHeight),
	}
	dilated := raster.Dilate(mask, kernel)

	var rows []model.Region
	for _, box := range raster.ExternalBoxes(dilated) {
		bh, bw := float64(box.Height), float64(box.Width)
		if bh > h*d.config.MinRowHeightFrac && bh < h*d.config.MaxRowHeightFrac && bw > w*d.config.MinRowWidthFrac {
			box.X += bounds.Min.X
			box.Y += bounds.Min.Y
			rows = append(rows, box)
		}
	}
	return rows
}

// tokenBoxes recognizes the whole page and returns the boxes of confident
// tokens.
func (d *RowDetector) tokenBoxes(gray *image.Gray) ([]model.Region, error) {
	tokens, err := d.recognizer.Recognize(gray)
	if err != nil {
		return nil, fmt.Errorf("row recognition failed: %w", err)
	}

	var boxes []model.Region
	for _, tok := range tokens {
		if tok.Confidence < d.config.MinTokenConfidence {
			continue
		}
		box := tok.Box
		if box.IsEmpty() && len(tok.Polygon) > 0 {
			box = model.BoxFromPolygon(tok.Polygon)
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}
