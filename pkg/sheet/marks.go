package sheet

import "fmt"

// Print mark dimensions in points.
const (
	markLength = 18.0 // length of crop and fold ticks
	markInset  = 6.0  // distance from the paper edge
)

// Line is a straight mark segment in sheet coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Label is a short text mark with its bottom-left anchor.
type Label struct {
	Text string
	X, Y float64
}

// MarkOptions selects which print marks to generate.
type MarkOptions struct {
	Crop           bool // corner trim ticks
	Fold           bool // center fold ticks top and bottom
	SignatureOrder bool // collation label naming signature and sheet
}

// Any reports whether at least one mark kind is enabled.
func (o MarkOptions) Any() bool {
	return o.Crop || o.Fold || o.SignatureOrder
}

// SheetPosition locates one side within the whole booklet for the
// signature-order label.
type SheetPosition struct {
	Signature  int // 0-based signature index
	Signatures int // total signature count
	Sheet      int // 0-based sheet index within the signature
	Sheets     int // sheets in this signature
	Face       string
}

// MarkSet holds the computed mark geometry for one sheet side.
type MarkSet struct {
	Crop  []Line
	Fold  []Line
	Label *Label
}

// Marks computes print mark coordinates for a sheet of the given dimensions.
// Crop ticks form a small corner L at each of the four corners; fold ticks
// sit on the vertical center line at the top and bottom edges, marking where
// the sheet is folded; the signature-order label goes into the bottom-left
// margin area.
func Marks(width, height float64, opts MarkOptions, pos SheetPosition) MarkSet {
	var m MarkSet

	if opts.Crop {
		m.Crop = cropTicks(width, height)
	}
	if opts.Fold {
		center := width / 2
		m.Fold = []Line{
			{center, height - markInset, center, height - markInset - markLength},
			{center, markInset, center, markInset + markLength},
		}
	}
	if opts.SignatureOrder {
		m.Label = &Label{
			Text: fmt.Sprintf("sig %d/%d sheet %d %s",
				pos.Signature+1, pos.Signatures, pos.Sheet+1, pos.Face),
			X: markInset + markLength + 6,
			Y: markInset,
		}
	}
	return m
}

// cropTicks returns the eight corner tick segments: a horizontal and a
// vertical tick per corner, inset from both edges.
func cropTicks(width, height float64) []Line {
	left := markInset
	right := width - markInset
	bottom := markInset
	top := height - markInset

	return []Line{
		// bottom-left
		{left, bottom, left + markLength, bottom},
		{left, bottom, left, bottom + markLength},
		// bottom-right
		{right, bottom, right - markLength, bottom},
		{right, bottom, right, bottom + markLength},
		// top-left
		{left, top, left + markLength, top},
		{left, top, left, top - markLength},
		// top-right
		{right, top, right - markLength, top},
		{right, top, right, top - markLength},
	}
}
