package tables

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/ocr"
	"github.com/tsawler/scantable/raster"
)

// CellExtractor reads the text inside a page region with the recognizer.
type CellExtractor struct {
	config     Config
	recognizer ocr.Recognizer
	logger     *slog.Logger
}

// NewCellExtractor creates a cell extractor. A nil logger discards.
func NewCellExtractor(config Config, recognizer ocr.Recognizer, logger *slog.Logger) *CellExtractor {
	return &CellExtractor{config: config, recognizer: recognizer, logger: orDiscard(logger)}
}

// Extract recognizes the region and returns its strings in recognizer
// order, trimmed, without strings shorter than the configured minimum.
// A region outside the image yields nothing.
func (e *CellExtractor) Extract(gray *image.Gray, region model.Region) ([]string, error) {
	crop := raster.Crop(gray, region)
	if crop == nil {
		return nil, nil
	}

	tokens, err := e.recognizer.Recognize(crop)
	if err != nil {
		return nil, fmt.Errorf("recognition failed for region %v: %w", region.Rect(), err)
	}

	texts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		text := strings.TrimSpace(tok.Text)
		if utf8.RuneCountInString(text) < e.config.MinTextLength {
			continue
		}
		texts = append(texts, text)
	}
	e.logger.Debug("region recognized", "region", region.Rect().String(), "tokens", len(tokens), "kept", len(texts))
	return texts, nil
}

// ExtractCell recognizes a single cell and joins its strings with a space.
func (e *CellExtractor) ExtractCell(gray *image.Gray, region model.Region) (string, error) {
	texts, err := e.Extract(gray, region)
	if err != nil {
		return "", err
	}
	return strings.Join(texts, " "), nil
}

// CellRegion is the intersection of a column with a row band: the column's
// x-range over the band's y-range.
func CellRegion(column model.Region, band model.RowBand) model.Region {
	b := band.Bounds()
	return model.NewRegion(column.X, b.Y, column.Width, b.Height)
}
