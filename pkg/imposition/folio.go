package imposition

import "github.com/binderykit/bindery/pkg/errors"

// Face identifies which side of a printed sheet an imposed side lands on.
type Face string

// Sheet faces.
const (
	FaceFront Face = "front"
	FaceBack  Face = "back"
)

// ImposedSide is one printable face of one sheet: the two page tokens placed
// left and right on that face. Immutable value.
type ImposedSide struct {
	Face  Face
	Left  PageRef
	Right PageRef
}

// Folio mappings select (left, right) from 1-based quartet positions.
// The quartet order is 1=left_inner, 2=right_outer, 3=left_outer,
// 4=right_inner, mirroring the folio sheet-numbering tables used by booklet
// imposition tools. The numbers are a fixed external convention validated by
// the worked examples in the tests; do not re-derive them.
var (
	folioFront      = [2]int{3, 2}
	folioBack       = [2]int{1, 4}
	folioBackRotate = [2]int{4, 1}
)

// sheetQuartet reads the four tokens participating in one sheet of a
// signature using the nested indexing rule: two tokens from the front of the
// signature and two mirrored from the end.
func sheetQuartet(sig Signature, sheetIndex int) [4]PageRef {
	start := sheetIndex * 2
	return [4]PageRef{
		sig[start+1],          // left inner
		sig[start],            // right outer
		sig[len(sig)-1-start], // left outer
		sig[len(sig)-2-start], // right inner
	}
}

// pickFromFolio selects the (left, right) pair from a quartet by 1-based
// folio positions.
func pickFromFolio(quartet [4]PageRef, mapping [2]int) (PageRef, PageRef) {
	return quartet[mapping[0]-1], quartet[mapping[1]-1]
}

// ImposeSignature maps one signature onto its printable sheet sides.
//
// For a signature of L pages it produces L/2 sides: front then back for each
// of the L/4 sheets, in ascending sheet order. The front face takes folio
// positions (3,2) of the sheet quartet. The back face takes (1,4), or (4,1)
// when duplexRotate is set, which models a duplexer that rotates the back
// image 180° and therefore swaps left and right.
//
// A signature whose length is not divisible by four fails with
// INVALID_INPUT.
func ImposeSignature(sig Signature, duplexRotate bool) ([]ImposedSide, error) {
	if len(sig)%4 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "signature length must be divisible by 4, got %d", len(sig))
	}

	backMapping := folioBack
	if duplexRotate {
		backMapping = folioBackRotate
	}

	sheets := len(sig) / 4
	sides := make([]ImposedSide, 0, sheets*2)
	for sheet := 0; sheet < sheets; sheet++ {
		quartet := sheetQuartet(sig, sheet)
		frontLeft, frontRight := pickFromFolio(quartet, folioFront)
		backLeft, backRight := pickFromFolio(quartet, backMapping)

		sides = append(sides,
			ImposedSide{Face: FaceFront, Left: frontLeft, Right: frontRight},
			ImposedSide{Face: FaceBack, Left: backLeft, Right: backRight},
		)
	}
	return sides, nil
}

// ImposeSignatures imposes each signature in input order and concatenates
// the results. No reordering or interleaving happens across signatures.
func ImposeSignatures(sigs []Signature, duplexRotate bool) ([]ImposedSide, error) {
	var out []ImposedSide
	for _, sig := range sigs {
		sides, err := ImposeSignature(sig, duplexRotate)
		if err != nil {
			return nil, err
		}
		out = append(out, sides...)
	}
	return out, nil
}
