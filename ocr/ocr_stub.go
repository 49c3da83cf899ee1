//go:build !ocr

// Package ocr provides the text recognition capability used to read table
// cells from page images.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// All functions return ErrOCRNotEnabled.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"
	"image"

	"github.com/tsawler/scantable/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New(opts Options) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// Recognize returns an error indicating OCR support is not enabled.
func (c *Client) Recognize(img image.Image) ([]model.TextToken, error) {
	return nil, ErrOCRNotEnabled
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode returns an error indicating OCR support is not enabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}

// SetLevel is a no-op for the stub client.
func (c *Client) SetLevel(level Level) {}
