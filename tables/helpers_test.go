package tables

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/ocr"
)

// Synthetic statement page geometry. Columns are 130 px wide with 60 px
// gutters; every cell is a solid 14 px tall block on a 40 px row pitch.
const (
	pageWidth   = 1200
	pageHeight  = 600
	colLeft     = 40
	colPitch    = 190
	colWidth    = 130
	rowTop      = 60
	rowPitch    = 40
	blockHeight = 14
)

// fakeCell is a block of ink with the text a recognizer would read there.
type fakeCell struct {
	box  model.Region
	text string
}

// newPage creates a white gray image with the given black rectangles.
func newPage(w, h int, blocks ...model.Region) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, b := range blocks {
		for y := b.Y; y < b.Bottom(); y++ {
			for x := b.X; x < b.Right(); x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func cellBox(col, row int) model.Region {
	return model.NewRegion(colLeft+col*colPitch, rowTop+row*rowPitch, colWidth, blockHeight)
}

// statementPage renders rows as blocks, one per cell, and returns the page
// with the recognizer's view of it.
func statementPage(rows [][]string) (*image.Gray, []fakeCell) {
	var blocks []model.Region
	var cells []fakeCell
	for r, row := range rows {
		for c, text := range row {
			box := cellBox(c, r)
			blocks = append(blocks, box)
			cells = append(cells, fakeCell{box: box, text: text})
		}
	}
	return newPage(pageWidth, pageHeight, blocks...), cells
}

// sampleRows returns n well-formed statement rows as text.
func sampleRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("%02d/01/2017", i+1),
			fmt.Sprintf("%d.25", 60+i),
			fmt.Sprintf("%d.75", 61+i),
			fmt.Sprintf("%d.10", 59+i),
			fmt.Sprintf("%d.50", 60+i),
			fmt.Sprintf("%d,000", 21+i),
		}
	}
	return rows
}

// cellRecognizer returns every cell whose centre lies inside the image
// bounds, in page order, like a recognizer reading a crop.
func cellRecognizer(cells []fakeCell) ocr.Recognizer {
	return ocr.RecognizerFunc(func(img image.Image) ([]model.TextToken, error) {
		area := model.RegionFromRect(img.Bounds())
		var tokens []model.TextToken
		for _, c := range cells {
			if area.Contains(c.box.Center()) {
				tokens = append(tokens, model.TextToken{Box: c.box, Text: c.text, Confidence: 0.95})
			}
		}
		return tokens, nil
	})
}

var errRecognizer = errors.New("recognizer exploded")

func failingRecognizer() ocr.Recognizer {
	return ocr.RecognizerFunc(func(image.Image) ([]model.TextToken, error) {
		return nil, errRecognizer
	})
}
