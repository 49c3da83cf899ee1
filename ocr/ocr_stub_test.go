//go:build !ocr

package ocr

import (
	"errors"
	"image"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	client, err := New(DefaultOptions())
	if err == nil {
		t.Error("Expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	err := client.Close()
	if err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}

func TestStubRecognize(t *testing.T) {
	var client Client
	_, err := client.Recognize(image.NewGray(image.Rect(0, 0, 4, 4)))
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize() error = %v, want ErrOCRNotEnabled", err)
	}
	if err := client.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage() error = %v, want ErrOCRNotEnabled", err)
	}
}
