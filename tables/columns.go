package tables

import (
	"image"
	"io"
	"log/slog"
	"sort"

	"github.com/tsawler/scantable/model"
	"github.com/tsawler/scantable/raster"
)

// ColumnDetector finds vertical column bands from the page's vertical ink
// projection. It always returns exactly the requested number of columns:
// when the projection does not show enough evidence the page width is split
// evenly and the result is marked as a fallback.
type ColumnDetector struct {
	config Config
	logger *slog.Logger
}

// NewColumnDetector creates a column detector. A nil logger discards.
func NewColumnDetector(config Config, logger *slog.Logger) *ColumnDetector {
	return &ColumnDetector{config: config, logger: orDiscard(logger)}
}

// Detect returns n column regions spanning the full page height, sorted
// left to right. A nil image yields an empty set.
func (d *ColumnDetector) Detect(gray *image.Gray, n int) model.ColumnSet {
	if gray == nil || n <= 0 {
		return model.ColumnSet{}
	}
	bounds := gray.Bounds()
	width := bounds.Dx()

	mask := raster.AdaptiveThreshold(gray, raster.GaussianC, d.config.ColumnBlockSize, d.config.ColumnC)
	mask = raster.Open(mask, raster.Kernel{Width: d.config.ColumnOpenWidth, Height: d.config.ColumnOpenHeight})

	profile := smoothProfile(mask.ColumnCounts(), d.config.SmoothingWindow)
	segments := activeSegments(profile, d.config.ProfileThreshold, d.config.MinColumnWidth)

	fallback := false
	if len(segments) < n {
		d.logger.Debug("column evidence insufficient, splitting evenly",
			"found", len(segments), "want", n, "width", width)
		segments = evenSplit(width, n)
		fallback = true
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].start < segments[j].start
	})
	if len(segments) > n {
		segments = segments[:n]
	}

	set := model.ColumnSet{Regions: make([]model.Region, len(segments)), Fallback: fallback}
	for i, s := range segments {
		set.Regions[i] = model.NewRegion(bounds.Min.X+s.start, bounds.Min.Y, s.end-s.start, bounds.Dy())
	}
	d.logger.Debug("columns detected", "count", set.Len(), "fallback", fallback)
	return set
}

// span is a half-open x-range [start, end).
type span struct {
	start, end int
}

// smoothProfile applies a moving average of the given window. The output
// has the input's length and is centred on each sample; samples beyond the
// ends count as zero.
func smoothProfile(counts []int, window int) []float64 {
	out := make([]float64, len(counts))
	if window <= 1 {
		for i, c := range counts {
			out[i] = float64(c)
		}
		return out
	}

	prefix := make([]int, len(counts)+1)
	for i, c := range counts {
		prefix[i+1] = prefix[i] + c
	}

	offset := (window - 1) / 2
	for i := range counts {
		hi := i + offset
		lo := hi - window + 1
		if lo < 0 {
			lo = 0
		}
		if hi > len(counts)-1 {
			hi = len(counts) - 1
		}
		out[i] = float64(prefix[hi+1]-prefix[lo]) / float64(window)
	}
	return out
}

// activeSegments returns the runs where the profile exceeds
// fraction*max and which are wider than minWidth. A zero profile has no
// active runs.
func activeSegments(profile []float64, fraction float64, minWidth int) []span {
	maxVal := 0.0
	for _, v := range profile {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return nil
	}
	threshold := fraction * maxVal

	var segments []span
	start := -1
	for i, v := range profile {
		active := v > threshold
		switch {
		case active && start < 0:
			start = i
		case !active && start >= 0:
			if i-start > minWidth {
				segments = append(segments, span{start, i})
			}
			start = -1
		}
	}
	if start >= 0 && len(profile)-start > minWidth {
		segments = append(segments, span{start, len(profile)})
	}
	return segments
}

// evenSplit divides width into n adjacent bands. Boundaries are i*width/n so
// the bands tile the whole width; they are equal whenever n divides width.
// A page narrower than n pixels gets one-pixel bands at x = 0..n-1; the
// bands past the right edge lie off the page and read as empty cells.
func evenSplit(width, n int) []span {
	segments := make([]span, n)
	if width < n {
		for i := range segments {
			segments[i] = span{i, i + 1}
		}
		return segments
	}
	for i := range segments {
		segments[i] = span{i * width / n, (i + 1) * width / n}
	}
	return segments
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
