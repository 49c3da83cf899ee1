package model

// TextToken is one unit of recognized text: a word or line with its
// bounding box and the engine's confidence in [0, 1].
type TextToken struct {
	Box        Region
	Polygon    []Point // optional raw polygon as reported by the engine
	Text       string
	Confidence float64
}

// CellKind identifies the type of a normalized cell.
type CellKind int

const (
	CellUnparseable CellKind = iota
	CellDate
	CellNumber
)

// String returns the name of the kind.
func (k CellKind) String() string {
	switch k {
	case CellDate:
		return "date"
	case CellNumber:
		return "number"
	default:
		return "unparseable"
	}
}

// CellValue is the typed result of normalizing one recognized string.
// An unparseable cell carries no value; it is never treated as zero.
type CellValue struct {
	Kind   CellKind
	Raw    string
	Date   string
	Number float64
}

// OK reports whether the cell normalized successfully.
func (v CellValue) OK() bool {
	return v.Kind != CellUnparseable
}
