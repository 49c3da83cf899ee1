// Package synth renders synthetic bank-statement pages with known geometry
// and ground truth.
//
// A page is a white canvas with a title line, a header row and a number of
// seeded daily price rows laid out in six equal-width column bands. Every
// rendered cell is reported with its box and text, so a page can drive the
// extraction pipeline through a fake recognizer, and the ground-truth rows
// can be scored with the evaluate package.
//
//	page, err := synth.Render(synth.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = png.Encode(w, page.Image)
//	fmt.Print(page.Table().ToCSV())
package synth

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/raster"
)

// Header is the column header line drawn above the data rows.
var Header = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// Config controls page layout and content.
type Config struct {
	Width      int     // page width in pixels
	Rows       int     // number of data rows
	Seed       int64   // random seed for prices and volumes
	FontSize   float64 // font size in points at 72 DPI, i.e. pixels
	RowPitch   int     // vertical distance between baselines
	TopMargin  int     // space above the header row
	Padding    int     // left inset of text within each column band
	Title      string  // drawn above the header; empty for none
	StartDate  time.Time
	StartPrice float64

	// Rules draws a horizontal line under the header row.
	Rules bool

	// Noise is the probability that any pixel is flipped to black or white.
	Noise float64

	// Blur is a Gaussian sigma applied after drawing; zero disables it.
	Blur float64
}

// DefaultConfig returns a clean ten-row page.
func DefaultConfig() Config {
	return Config{
		Width:      1200,
		Rows:       10,
		Seed:       1,
		FontSize:   20,
		RowPitch:   36,
		TopMargin:  100,
		Padding:    20,
		Title:      "Daily historical stock prices",
		StartDate:  time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC),
		StartPrice: 60,
	}
}

// Cell is one rendered piece of text and the box it occupies.
type Cell struct {
	Row    int // -1 for the header row
	Column int
	Text   string
	Box    model.Region
}

// Page is a rendered statement page.
type Page struct {
	Image *image.Gray

	// Rows is the ground truth in page order.
	Rows []model.Row

	// Columns are the six column bands, full page height.
	Columns []model.Region

	// Cells lists the header cells followed by every data cell in row
	// order.
	Cells []Cell

	// Lines is the text of every rendered line, title first.
	Lines []string
}

// Table returns the ground-truth rows as a table.
func (p *Page) Table() *model.Table {
	t := model.NewTable()
	t.Rows = append(t.Rows, p.Rows...)
	return t
}

// Text returns the ground-truth transcript, one line per rendered line.
func (p *Page) Text() string {
	return strings.Join(p.Lines, "\n")
}

// TokensIn returns one token per cell whose centre lies inside region.
// Tokens carry full confidence and keep page coordinates.
func (p *Page) TokensIn(region model.Region) []model.TextToken {
	var tokens []model.TextToken
	for _, c := range p.Cells {
		if region.Contains(c.Box.Center()) {
			tokens = append(tokens, model.TextToken{Box: c.Box, Text: c.Text, Confidence: 1})
		}
	}
	return tokens
}

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// Render draws a page according to config.
func Render(config Config) (*Page, error) {
	if config.Width <= 0 || config.Rows < 0 || config.FontSize <= 0 || config.RowPitch <= 0 {
		return nil, fmt.Errorf("invalid page config: width %d, rows %d, font size %v, pitch %d",
			config.Width, config.Rows, config.FontSize, config.RowPitch)
	}

	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	height := config.TopMargin + (config.Rows+1)*config.RowPitch + config.TopMargin/2
	img := image.NewGray(image.Rect(0, 0, config.Width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(config.FontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	face := truetype.NewFace(f, &truetype.Options{Size: config.FontSize, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := ascent + metrics.Descent.Ceil()

	page := &Page{
		Image:   img,
		Rows:    generateRows(config),
		Columns: columnBands(config.Width, height, len(Header)),
	}

	drawText := func(s string, x, baseline int) (int, error) {
		if _, err := ctx.DrawString(s, freetype.Pt(x, baseline)); err != nil {
			return 0, fmt.Errorf("failed to draw %q: %w", s, err)
		}
		return font.MeasureString(face, s).Ceil(), nil
	}

	if config.Title != "" {
		if _, err := drawText(config.Title, config.Padding, config.TopMargin/2); err != nil {
			return nil, err
		}
		page.Lines = append(page.Lines, config.Title)
	}

	lines := make([][]string, 0, len(page.Rows)+1)
	lines = append(lines, Header)
	for _, r := range page.Rows {
		lines = append(lines, rowStrings(r))
	}

	for i, cells := range lines {
		top := config.TopMargin + i*config.RowPitch
		baseline := top + ascent
		for j, text := range cells {
			x := page.Columns[j].X + config.Padding
			w, err := drawText(text, x, baseline)
			if err != nil {
				return nil, err
			}
			page.Cells = append(page.Cells, Cell{
				Row:    i - 1,
				Column: j,
				Text:   text,
				Box:    model.NewRegion(x, top, w, lineHeight),
			})
		}
		page.Lines = append(page.Lines, strings.Join(cells, " "))

		if i == 0 && config.Rules {
			y := top + lineHeight + (config.RowPitch-lineHeight)/2
			draw.Draw(img, image.Rect(config.Padding, y, config.Width-config.Padding, y+2), image.Black, image.Point{}, draw.Src)
		}
	}

	if config.Blur > 0 {
		page.Image = raster.ToGray(imaging.Blur(page.Image, config.Blur))
	}
	if config.Noise > 0 {
		addNoise(page.Image, config.Noise, config.Seed)
	}
	return page, nil
}

// columnBands splits the width into n equal bands, matching the even split
// used when column detection falls back.
func columnBands(width, height, n int) []model.Region {
	bands := make([]model.Region, n)
	for i := range bands {
		x0 := i * width / n
		x1 := (i + 1) * width / n
		bands[i] = model.NewRegion(x0, 0, x1-x0, height)
	}
	return bands
}

// generateRows produces a seeded random walk of daily prices.
func generateRows(config Config) []model.Row {
	rng := rand.New(rand.NewSource(config.Seed))
	start := config.StartDate
	if start.IsZero() {
		start = time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC)
	}
	price := config.StartPrice
	if price <= 0 {
		price = 60
	}

	rows := make([]model.Row, config.Rows)
	for i := range rows {
		open := model.Round2(price + rng.Float64()*2 - 1)
		cls := model.Round2(open + rng.Float64()*3 - 1.5)
		if cls < 1 {
			cls = 1
		}
		high := model.Round2(max(open, cls) + rng.Float64())
		low := model.Round2(min(open, cls) - rng.Float64())
		if low < 0.5 {
			low = 0.5
		}
		rows[i] = model.Row{
			Date:   start.AddDate(0, 0, i).Format("02/01/2006"),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  cls,
			Volume: 15_000_000 + rng.Int63n(10_000_000),
		}
		price = cls
	}
	return rows
}

// rowStrings formats a row the way a statement prints it, with grouped
// thousands in the volume column.
func rowStrings(r model.Row) []string {
	return []string{
		r.Date,
		strconv.FormatFloat(r.Open, 'f', 2, 64),
		strconv.FormatFloat(r.High, 'f', 2, 64),
		strconv.FormatFloat(r.Low, 'f', 2, 64),
		strconv.FormatFloat(r.Close, 'f', 2, 64),
		groupThousands(r.Volume),
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

func addNoise(img *image.Gray, p float64, seed int64) {
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rng.Float64() >= p {
				continue
			}
			if rng.Intn(2) == 0 {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
}
