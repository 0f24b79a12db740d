package imposition_test

import (
	"fmt"

	"github.com/binderykit/bindery/pkg/imposition"
)

func Example() {
	// A 9-page document, no flyleafs, 6 sheets per signature.
	ordered, _ := imposition.BuildOrderedPages(imposition.PageRange(9), 0)
	sigs, _ := imposition.SplitSignatures(ordered, 6)
	sides, _ := imposition.ImposeSignatures(sigs, false)

	for _, s := range sides {
		fmt.Printf("%s %s|%s\n", s.Face, s.Left, s.Right)
	}
	// Output:
	// front blank|0
	// back 1|blank
	// front blank|2
	// back 3|8
	// front 7|4
	// back 5|6
}

func ExampleInsertFlyleafs() {
	pages, _ := imposition.InsertFlyleafs(imposition.PageRange(2), 1)
	fmt.Println(pages)
	// Output:
	// [blank blank 0 1 blank blank]
}

func ExampleImposeSignature_duplexRotate() {
	// Rotated duplexers flip the back image 180°, swapping left and right.
	sig := imposition.Signature(imposition.PageRange(4))

	straight, _ := imposition.ImposeSignature(sig, false)
	rotated, _ := imposition.ImposeSignature(sig, true)

	fmt.Printf("straight back: %s|%s\n", straight[1].Left, straight[1].Right)
	fmt.Printf("rotated back:  %s|%s\n", rotated[1].Left, rotated[1].Right)
	// Output:
	// straight back: 1|2
	// rotated back:  2|1
}
