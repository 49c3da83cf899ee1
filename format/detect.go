// Package format provides input file format detection for scantable.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// TIFF indicates a TIFF image, the usual output of document scanners.
	TIFF
	// BMP indicates a Windows bitmap.
	BMP
	// WEBP indicates a WebP image.
	WEBP
	// PDF indicates a PDF document. Only scanned PDFs, which carry each
	// page as an image, can be read.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	case WEBP:
		return "WEBP"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tif"
	case BMP:
		return ".bmp"
	case WEBP:
		return ".webp"
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// IsImage reports whether the format is a raster image format.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, TIFF, BMP, WEBP:
		return true
	}
	return false
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	case ".webp":
		return WEBP
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

var (
	magicPNG    = []byte("\x89PNG\r\n\x1a\n")
	magicJPEG   = []byte{0xFF, 0xD8, 0xFF}
	magicTIFFLE = []byte("II*\x00")
	magicTIFFBE = []byte("MM\x00*")
	magicBMP    = []byte("BM")
	magicPDF    = []byte("%PDF")
)

// DetectBytes checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectBytes(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPNG):
		return PNG
	case bytes.HasPrefix(data, magicJPEG):
		return JPEG
	case bytes.HasPrefix(data, magicTIFFLE), bytes.HasPrefix(data, magicTIFFBE):
		return TIFF
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return WEBP
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case len(data) >= 14 && bytes.HasPrefix(data, magicBMP):
		return BMP
	}
	return Unknown
}

// DetectFromReader reads the first bytes of r and detects the format from
// them.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, 16)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectBytes(magic[:n]), nil
}
