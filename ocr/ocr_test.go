//go:build ocr

package ocr

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a simple image with a text-like block for testing.
// This is a very basic image that OCR might or might not recognize.
func createTestImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(DefaultOptions())
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNew(t *testing.T) {
	client := newTestClient(t)
	if client == nil {
		t.Error("Expected non-nil client")
	}
}

func TestRecognize(t *testing.T) {
	client := newTestClient(t)

	// The block is not text; only the call contract is checked.
	tokens, err := client.Recognize(createTestImage(100, 50))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	for _, tok := range tokens {
		if tok.Confidence < 0 || tok.Confidence > 1 {
			t.Errorf("confidence %v out of [0,1]", tok.Confidence)
		}
	}
}

func TestRecognize_SubImageCoordinates(t *testing.T) {
	client := newTestClient(t)

	full := createTestImage(200, 100)
	sub := full.SubImage(image.Rect(100, 50, 200, 100))
	tokens, err := client.Recognize(sub)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	for _, tok := range tokens {
		if tok.Box.X < 100 || tok.Box.Y < 50 {
			t.Errorf("token box %+v not offset into sub-image bounds", tok.Box)
		}
	}
}

func TestRecognize_Empty(t *testing.T) {
	client := newTestClient(t)

	tokens, err := client.Recognize(image.NewGray(image.Rect(0, 0, 0, 0)))
	if err != nil || tokens != nil {
		t.Errorf("Recognize(empty) = %v, %v, want nil, nil", tokens, err)
	}
}

func TestSetLanguage(t *testing.T) {
	client := newTestClient(t)

	// English should always be available
	if err := client.SetLanguage("eng"); err != nil {
		t.Errorf("SetLanguage failed: %v", err)
	}
}

func TestSetPageSegMode(t *testing.T) {
	client := newTestClient(t)

	if err := client.SetPageSegMode(PSM_SINGLE_COLUMN); err != nil {
		t.Errorf("SetPageSegMode failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	client, err := New(DefaultOptions())
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, err := client.Recognize(createTestImage(10, 10)); err == nil {
		t.Error("Recognize after Close should fail")
	}
	if err := client.SetLanguage("eng"); err == nil {
		t.Error("SetLanguage after Close should fail")
	}
	if err := client.SetPageSegMode(PSM_AUTO); err == nil {
		t.Error("SetPageSegMode after Close should fail")
	}
}
