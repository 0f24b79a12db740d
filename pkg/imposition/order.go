package imposition

import "github.com/binderykit/bindery/pkg/errors"

// Signature is an ordered run of page tokens forming one folded booklet
// section. Its length is always a positive multiple of four; sheets within a
// signature are nested, the outermost sheet wrapping all others.
type Signature []PageRef

// InsertFlyleafs prepends and appends flyleafSets*2 blank tokens to pages,
// the same count on each side. A flyleaf set is a pair of blank leaves at
// the front and back of the bound book.
//
// The input slice is never modified; a fresh slice is returned.
func InsertFlyleafs(pages []PageRef, flyleafSets int) ([]PageRef, error) {
	if flyleafSets < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "flyleaf sets must be >= 0, got %d", flyleafSets)
	}

	blanksPerEdge := flyleafSets * 2
	out := make([]PageRef, 0, len(pages)+2*blanksPerEdge)
	for i := 0; i < blanksPerEdge; i++ {
		out = append(out, Blank())
	}
	out = append(out, pages...)
	for i := 0; i < blanksPerEdge; i++ {
		out = append(out, Blank())
	}
	return out, nil
}

// PadToMultipleOfFour appends 0–3 trailing blank tokens so the result length
// is a multiple of four. It is a no-op copy if the input is already aligned.
func PadToMultipleOfFour(pages []PageRef) []PageRef {
	padding := (4 - len(pages)%4) % 4
	out := make([]PageRef, 0, len(pages)+padding)
	out = append(out, pages...)
	for i := 0; i < padding; i++ {
		out = append(out, Blank())
	}
	return out
}

// BuildOrderedPages is the canonical entry point for turning a raw source
// page sequence into an ordering ready for signature splitting: flyleaf
// insertion followed by padding to a multiple of four.
func BuildOrderedPages(pages []PageRef, flyleafSets int) ([]PageRef, error) {
	withFlyleafs, err := InsertFlyleafs(pages, flyleafSets)
	if err != nil {
		return nil, err
	}
	return PadToMultipleOfFour(withFlyleafs), nil
}

// PagesPerSignature returns the page count of a full signature of the given
// sheet length: four pages per folded sheet.
func PagesPerSignature(sheets int) (int, error) {
	if sheets <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "signature length must be > 0 sheets, got %d", sheets)
	}
	return sheets * 4, nil
}

// SplitSignatures partitions an ordered page sequence into consecutive
// signatures of sheets folded sheets each (4*sheets pages). The final
// signature may be shorter than the others but is always a non-zero multiple
// of four pages.
//
// The input must already be padded to a multiple of four; SplitSignatures
// does not pad. An unaligned input, or a chunking that would produce a
// malformed trailing signature, fails with INVALID_INPUT rather than
// emitting a signature the folio mapping cannot fold.
func SplitSignatures(ordered []PageRef, sheets int) ([]Signature, error) {
	perSignature, err := PagesPerSignature(sheets)
	if err != nil {
		return nil, err
	}
	if len(ordered)%4 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "ordered pages must be padded to a multiple of 4, got %d", len(ordered))
	}

	signatures := make([]Signature, 0, (len(ordered)+perSignature-1)/perSignature)
	for start := 0; start < len(ordered); start += perSignature {
		end := start + perSignature
		if end > len(ordered) {
			end = len(ordered)
		}
		sig := make(Signature, end-start)
		copy(sig, ordered[start:end])
		if len(sig)%4 != 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "signature page count %d is not divisible by 4", len(sig))
		}
		signatures = append(signatures, sig)
	}
	return signatures, nil
}
