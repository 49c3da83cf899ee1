//go:build ocr

// Package ocr provides the text recognition capability used to read table
// cells from page images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/scantable/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. It is never returned by this build.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client wraps Tesseract for OCR operations. A Client is expensive to
// construct; create one per process and share it. Calls are serialized
// because the underlying engine handle is not reentrant.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
	level  Level
}

// New creates a new OCR client configured with opts.
// The client should be closed when no longer needed to release resources.
func New(opts Options) (*Client, error) {
	client := gosseract.NewClient()
	c := &Client{client: client, level: opts.Level}

	if opts.Language != "" {
		if err := c.SetLanguage(opts.Language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
	}
	if err := c.SetPageSegMode(opts.PageSegMode); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return c, nil
}

var errClosed = errors.New("OCR client is closed")

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// Recognize performs OCR on img and returns tokens in img's coordinates
// with confidence scaled to [0, 1]. Tokens come back in the engine's
// reading order, top to bottom for a single column.
func (c *Client) Recognize(img image.Image) ([]model.TextToken, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil, errClosed
	}

	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(c.iteratorLevel())
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	origin := img.Bounds().Min
	tokens := make([]model.TextToken, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		tokens = append(tokens, model.TextToken{
			Box:        model.RegionFromRect(b.Box.Add(origin)),
			Text:       text,
			Confidence: b.Confidence / 100,
		})
	}
	return tokens, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
func (c *Client) SetLanguage(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return errClosed
	}
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return errClosed
	}
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}

// SetLevel changes the token granularity returned by Recognize.
func (c *Client) SetLevel(level Level) {
	c.mu.Lock()
	c.level = level
	c.mu.Unlock()
}

func (c *Client) iteratorLevel() gosseract.PageIteratorLevel {
	if c.level == LevelWord {
		return gosseract.RIL_WORD
	}
	return gosseract.RIL_TEXTLINE
}
