package tables

import (
	"errors"
	"image"
	"testing"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/ocr"
)

func TestRowDetector_Morphology(t *testing.T) {
	page, _ := statementPage(sampleRows(10))
	det, err := NewRowDetector(DefaultConfig(), nil, nil).Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if det.Strategy != RowStrategyMorphology {
		t.Errorf("Strategy = %v, want morphology", det.Strategy)
	}
	if len(det.Bands) != 10 {
		t.Fatalf("len(Bands) = %d, want 10", len(det.Bands))
	}
	for i, band := range det.Bands {
		block := cellBox(0, i)
		b := band.Bounds()
		if b.Y > block.Y || b.Bottom() < block.Bottom() {
			t.Errorf("band %d spans y [%d,%d), does not cover row [%d,%d)",
				i, b.Y, b.Bottom(), block.Y, block.Bottom())
		}
		if b.Width <= pageWidth*6/10 {
			t.Errorf("band %d width = %d, want near full width", i, b.Width)
		}
	}
}

func TestRowDetector_SkipsNarrowInk(t *testing.T) {
	// A single narrow block cannot be smeared across 60% of the page.
	page := newPage(pageWidth, pageHeight, model.NewRegion(40, 100, 130, 14))
	det, err := NewRowDetector(DefaultConfig(), nil, nil).Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if det.Strategy != RowStrategyNone || len(det.Bands) != 0 {
		t.Errorf("Detect() = %+v, want no rows", det)
	}
}

func TestRowDetector_TokenFallback(t *testing.T) {
	tokens := []model.TextToken{
		{Box: model.NewRegion(10, 100, 50, 20), Text: "a", Confidence: 0.9},
		{Box: model.NewRegion(80, 105, 50, 20), Text: "b", Confidence: 0.9},
		{Box: model.NewRegion(10, 200, 50, 20), Text: "c", Confidence: 0.3},
		{Box: model.NewRegion(10, 300, 50, 20), Text: "d", Confidence: 0.5},
	}
	rec := ocr.RecognizerFunc(func(image.Image) ([]model.TextToken, error) {
		return tokens, nil
	})

	det, err := NewRowDetector(DefaultConfig(), rec, nil).Detect(newPage(600, 400))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if det.Strategy != RowStrategyTokens {
		t.Errorf("Strategy = %v, want tokens", det.Strategy)
	}
	if len(det.Bands) != 2 {
		t.Fatalf("len(Bands) = %d, want 2", len(det.Bands))
	}
	if len(det.Bands[0].Boxes) != 2 || det.Bands[0].Y() != 100 {
		t.Errorf("band 0 = %+v, want the two tokens at y 100", det.Bands[0])
	}
	if det.Bands[1].Y() != 300 {
		t.Errorf("band 1 y = %d, want 300", det.Bands[1].Y())
	}
}

func TestRowDetector_TokenPolygon(t *testing.T) {
	rec := ocr.RecognizerFunc(func(image.Image) ([]model.TextToken, error) {
		return []model.TextToken{{
			Polygon:    []model.Point{{X: 10, Y: 50}, {X: 90, Y: 50}, {X: 90, Y: 70}, {X: 10, Y: 70}},
			Text:       "poly",
			Confidence: 0.8,
		}}, nil
	})

	det, err := NewRowDetector(DefaultConfig(), rec, nil).Detect(newPage(200, 200))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(det.Bands) != 1 || det.Bands[0].Boxes[0] != model.NewRegion(10, 50, 80, 20) {
		t.Errorf("Detect() = %+v, want one band from the polygon", det)
	}
}

func TestRowDetector_RecognizerError(t *testing.T) {
	_, err := NewRowDetector(DefaultConfig(), failingRecognizer(), nil).Detect(newPage(200, 200))
	if !errors.Is(err, errRecognizer) {
		t.Errorf("Detect() error = %v, want wrapped recognizer error", err)
	}
}

func TestRowDetector_NoRecognizer(t *testing.T) {
	det, err := NewRowDetector(DefaultConfig(), nil, nil).Detect(newPage(200, 200))
	if err != nil || det.Strategy != RowStrategyNone || len(det.Bands) != 0 {
		t.Errorf("Detect() = %+v, %v, want no rows and no error", det, err)
	}
}

func TestRowDetector_NilImage(t *testing.T) {
	det, err := NewRowDetector(DefaultConfig(), failingRecognizer(), nil).Detect(nil)
	if err != nil || len(det.Bands) != 0 {
		t.Errorf("Detect(nil) = %+v, %v", det, err)
	}
}

func TestRowStrategy_String(t *testing.T) {
	tests := []struct {
		s    RowStrategy
		want string
	}{
		{RowStrategyNone, "none"},
		{RowStrategyMorphology, "morphology"},
		{RowStrategyTokens, "tokens"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("RowStrategy(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

// ============================================================================
// Clustering Tests
// ============================================================================

func TestClusterRows(t *testing.T) {
	boxes := []model.Region{
		model.NewRegion(0, 50, 10, 10),
		model.NewRegion(0, 0, 10, 10),
		model.NewRegion(0, 8, 10, 10),
	}
	bands := clusterRows(boxes, 1)

	if len(bands) != 2 {
		t.Fatalf("len(bands) = %d, want 2", len(bands))
	}
	if bands[0].Y() != 0 || len(bands[0].Boxes) != 2 {
		t.Errorf("band 0 = %+v, want boxes at y 0 and 8", bands[0])
	}
	if bands[1].Y() != 50 {
		t.Errorf("band 1 y = %d, want 50", bands[1].Y())
	}
}

func TestClusterRows_ReferenceDoesNotCreep(t *testing.T) {
	// Each box is within tolerance of its predecessor but the third is not
	// within tolerance of the band's first box.
	boxes := []model.Region{
		model.NewRegion(0, 0, 10, 10),
		model.NewRegion(0, 8, 10, 10),
		model.NewRegion(0, 16, 10, 10),
	}
	bands := clusterRows(boxes, 1)
	if len(bands) != 2 {
		t.Fatalf("len(bands) = %d, want 2", len(bands))
	}
	if bands[1].Y() != 16 {
		t.Errorf("band 1 y = %d, want 16", bands[1].Y())
	}
}

func TestClusterRows_MinTolerance(t *testing.T) {
	boxes := []model.Region{
		model.NewRegion(0, 0, 10, 2),
		model.NewRegion(0, 5, 10, 2),
	}
	if got := len(clusterRows(boxes, 6)); got != 1 {
		t.Errorf("clusterRows(tolerance 6) = %d bands, want 1", got)
	}
	if got := len(clusterRows(boxes, 5)); got != 2 {
		t.Errorf("clusterRows(tolerance 5) = %d bands, want 2", got)
	}
}

func TestClusterRows_Empty(t *testing.T) {
	if bands := clusterRows(nil, 1); bands != nil {
		t.Errorf("clusterRows(nil) = %v, want nil", bands)
	}
}
