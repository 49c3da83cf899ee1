package tables

// Config holds the segmentation heuristics. Pixel values are in page
// pixels; fractions are of the page width (W) or height (H) as named.
type Config struct {
	// Adaptive gaussian threshold window for column detection (px, odd)
	ColumnBlockSize int

	// Constant subtracted from the local mean for column detection
	ColumnC float64

	// Opening kernel for column detection. Ink runs narrower than the
	// kernel (isolated strokes, speckle) are removed before projection.
	ColumnOpenWidth  int
	ColumnOpenHeight int

	// Moving-average window applied to the vertical projection (px)
	SmoothingWindow int

	// A projection column is active above this fraction of the profile max
	ProfileThreshold float64

	// Active segments must be strictly wider than this (px)
	MinColumnWidth int

	// Adaptive mean threshold window for row detection (px, odd)
	RowBlockSize int

	// Constant subtracted from the local mean for row detection
	RowC float64

	// Dilation kernel: max(W*RowKernelWidthFrac, RowKernelMinWidth) wide,
	// max(H*RowKernelHeightFrac, RowKernelMinHeight) tall
	RowKernelWidthFrac  float64
	RowKernelMinWidth   int
	RowKernelHeightFrac float64
	RowKernelMinHeight  int

	// A dilated box is a row candidate when its height lies strictly
	// between MinRowHeightFrac*H and MaxRowHeightFrac*H and its width
	// exceeds MinRowWidthFrac*W.
	MinRowHeightFrac float64
	MaxRowHeightFrac float64
	MinRowWidthFrac  float64

	// Boxes join a band while their y-start is within
	// max(box height, RowMergeFrac*H) of the band's first y
	RowMergeFrac float64

	// Recognizer fallback: tokens below this confidence are ignored
	MinTokenConfidence float64

	// Merge tolerance for the recognizer fallback, as a fraction of H
	TokenMergeFrac float64

	// Recognized strings shorter than this (runes) are discarded as noise
	MinTextLength int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		ColumnBlockSize:  31,
		ColumnC:          5,
		ColumnOpenWidth:  25,
		ColumnOpenHeight: 1,
		SmoothingWindow:  25,
		ProfileThreshold: 0.2,
		MinColumnWidth:   20,

		RowBlockSize:        15,
		RowC:                3,
		RowKernelWidthFrac:  0.15,
		RowKernelMinWidth:   30,
		RowKernelHeightFrac: 0.004,
		RowKernelMinHeight:  3,
		MinRowHeightFrac:    0.008,
		MaxRowHeightFrac:    0.08,
		MinRowWidthFrac:     0.6,
		RowMergeFrac:        0.01,

		MinTokenConfidence: 0.5,
		TokenMergeFrac:     0.02,

		MinTextLength: 2,
	}
}
