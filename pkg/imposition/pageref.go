package imposition

import "fmt"

// PageRef identifies one slot in an ordered page sequence: either a
// zero-based index into the source document, or the blank sentinel used for
// flyleaves and padding.
//
// The zero value is Page(0), i.e. the first source page. PageRef is a small
// value type with structural equality; the blank sentinel compares equal to
// itself everywhere in the pipeline and never equals a page index.
type PageRef struct {
	index int
	blank bool
}

// Page returns a reference to the source page at the given zero-based index.
// Page panics if index is negative; indexes come from counting loops and a
// negative value is a programming error, not caller input.
func Page(index int) PageRef {
	if index < 0 {
		panic(fmt.Sprintf("imposition: negative page index %d", index))
	}
	return PageRef{index: index}
}

// Blank returns the blank sentinel. All blanks are equal to each other and
// unequal to every page index.
func Blank() PageRef {
	return PageRef{blank: true}
}

// IsBlank reports whether r is the blank sentinel.
func (r PageRef) IsBlank() bool {
	return r.blank
}

// Index returns the zero-based source page index. It panics if r is blank;
// callers must check IsBlank first.
func (r PageRef) Index() int {
	if r.blank {
		panic("imposition: Index called on blank page token")
	}
	return r.index
}

// String returns "blank" for the sentinel and the decimal index otherwise.
func (r PageRef) String() string {
	if r.blank {
		return "blank"
	}
	return fmt.Sprintf("%d", r.index)
}

// MarshalJSON encodes the sentinel as the string "blank" and page references
// as their bare index, matching the String representation.
func (r PageRef) MarshalJSON() ([]byte, error) {
	if r.blank {
		return []byte(`"blank"`), nil
	}
	return []byte(fmt.Sprintf("%d", r.index)), nil
}

// PageRange returns [Page(0), Page(1), ..., Page(n-1)]. It is the standard
// way to build the source sequence from a document's page count.
func PageRange(n int) []PageRef {
	pages := make([]PageRef, n)
	for i := range pages {
		pages[i] = Page(i)
	}
	return pages
}
