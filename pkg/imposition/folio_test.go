package imposition

import (
	"reflect"
	"testing"

	"github.com/binderykit/bindery/pkg/errors"
)

func TestImposeSignatureTwoSheets(t *testing.T) {
	sig := Signature(PageRange(8))

	tests := []struct {
		name         string
		duplexRotate bool
		want         []ImposedSide
	}{
		{
			name: "straight duplex",
			want: []ImposedSide{
				{Face: FaceFront, Left: Page(7), Right: Page(0)},
				{Face: FaceBack, Left: Page(1), Right: Page(6)},
				{Face: FaceFront, Left: Page(5), Right: Page(2)},
				{Face: FaceBack, Left: Page(3), Right: Page(4)},
			},
		},
		{
			name:         "rotated duplex",
			duplexRotate: true,
			want: []ImposedSide{
				{Face: FaceFront, Left: Page(7), Right: Page(0)},
				{Face: FaceBack, Left: Page(6), Right: Page(1)},
				{Face: FaceFront, Left: Page(5), Right: Page(2)},
				{Face: FaceBack, Left: Page(4), Right: Page(3)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImposeSignature(sig, tt.duplexRotate)
			if err != nil {
				t.Fatalf("ImposeSignature error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sides = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImposeSignatureSideCount(t *testing.T) {
	// L pages produce L/2 sides (front and back for each of L/4 sheets)
	for _, length := range []int{4, 8, 12, 24} {
		sides, err := ImposeSignature(Signature(PageRange(length)), false)
		if err != nil {
			t.Fatalf("length %d: ImposeSignature error: %v", length, err)
		}
		if len(sides) != length/2 {
			t.Errorf("length %d: got %d sides, want %d", length, len(sides), length/2)
		}
		for i, side := range sides {
			wantFace := FaceFront
			if i%2 == 1 {
				wantFace = FaceBack
			}
			if side.Face != wantFace {
				t.Errorf("length %d: side %d face = %s, want %s", length, i, side.Face, wantFace)
			}
		}
	}
}

func TestImposeSignatureDeterministic(t *testing.T) {
	sig := Signature(PageRange(16))

	first, err := ImposeSignature(sig, true)
	if err != nil {
		t.Fatalf("ImposeSignature error: %v", err)
	}
	second, err := ImposeSignature(sig, true)
	if err != nil {
		t.Fatalf("ImposeSignature error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("re-running ImposeSignature on the same input produced different output")
	}
}

func TestImposeSignatureRejectsUnaligned(t *testing.T) {
	for _, length := range []int{1, 2, 3, 5, 6, 7, 9} {
		_, err := ImposeSignature(Signature(PageRange(length)), false)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("length %d: want INVALID_INPUT, got %v", length, err)
		}
	}
}

func TestImposeSignaturesConcatenatesInOrder(t *testing.T) {
	sigs := []Signature{PageRange(8), {Page(8), Page(9), Page(10), Page(11)}}

	got, err := ImposeSignatures(sigs, false)
	if err != nil {
		t.Fatalf("ImposeSignatures error: %v", err)
	}

	first, _ := ImposeSignature(sigs[0], false)
	second, _ := ImposeSignature(sigs[1], false)
	want := append(append([]ImposedSide{}, first...), second...)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("sides = %v, want %v", got, want)
	}
}

func TestImposeSignaturesPropagatesError(t *testing.T) {
	sigs := []Signature{PageRange(8), PageRange(6)}
	if _, err := ImposeSignatures(sigs, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("want INVALID_INPUT, got %v", err)
	}
}

// TestNinePageBookletEndToEnd walks a 9-page document through the whole
// pipeline with no flyleafs and 6-sheet signatures: padded to 12 tokens, a
// single short signature, imposed straight. The resulting token pairs match
// the reference booklet ordering.
func TestNinePageBookletEndToEnd(t *testing.T) {
	ordered, err := BuildOrderedPages(PageRange(9), 0)
	if err != nil {
		t.Fatalf("BuildOrderedPages error: %v", err)
	}
	if len(ordered) != 12 {
		t.Fatalf("ordered length = %d, want 12", len(ordered))
	}

	sigs, err := SplitSignatures(ordered, 6)
	if err != nil {
		t.Fatalf("SplitSignatures error: %v", err)
	}
	if len(sigs) != 1 {
		t.Fatalf("got %d signatures, want 1", len(sigs))
	}

	sides, err := ImposeSignatures(sigs, false)
	if err != nil {
		t.Fatalf("ImposeSignatures error: %v", err)
	}

	want := []ImposedSide{
		{Face: FaceFront, Left: Blank(), Right: Page(0)},
		{Face: FaceBack, Left: Page(1), Right: Blank()},
		{Face: FaceFront, Left: Blank(), Right: Page(2)},
		{Face: FaceBack, Left: Page(3), Right: Page(8)},
		{Face: FaceFront, Left: Page(7), Right: Page(4)},
		{Face: FaceBack, Left: Page(5), Right: Page(6)},
	}
	if !reflect.DeepEqual(sides, want) {
		t.Errorf("sides = %v, want %v", sides, want)
	}
}

func TestBlankSentinelIdentity(t *testing.T) {
	if Blank() != Blank() {
		t.Error("blank tokens must compare equal")
	}
	if Blank() == Page(0) {
		t.Error("blank token must not equal a page index")
	}
	if !Blank().IsBlank() {
		t.Error("IsBlank on sentinel returned false")
	}
	if Page(3).IsBlank() {
		t.Error("IsBlank on page index returned true")
	}
	if Page(3).Index() != 3 {
		t.Errorf("Index = %d, want 3", Page(3).Index())
	}
}
