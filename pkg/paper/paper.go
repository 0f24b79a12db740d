// Package paper provides the catalog of supported output paper sizes.
//
// Dimensions are expressed in PDF points (1/72 inch), portrait orientation.
package paper

import (
	"sort"
	"strings"

	"github.com/binderykit/bindery/pkg/errors"
)

// Size holds the portrait dimensions of a paper format in points.
type Size struct {
	Width  float64
	Height float64
}

// sizes is the catalog of recognized paper formats.
var sizes = map[string]Size{
	"A3":      {841.8898, 1190.551},
	"A4":      {595.2756, 841.8898},
	"A5":      {419.5276, 595.2756},
	"Legal":   {612.0, 1008.0},
	"Letter":  {612.0, 792.0},
	"Tabloid": {792.0, 1224.0},
}

// Default is the paper size used when the caller specifies none.
const Default = "A4"

// Resolve returns the dimensions for a named paper size. Unknown names fail
// with INVALID_INPUT listing the valid options.
func Resolve(name string) (Size, error) {
	if s, ok := sizes[name]; ok {
		return s, nil
	}
	return Size{}, errors.New(errors.ErrCodeInvalidInput,
		"unsupported paper size %q, expected one of: %s", name, strings.Join(Names(), ", "))
}

// pointsPerMillimeter converts metric custom dimensions to PDF points.
const pointsPerMillimeter = 72.0 / 25.4

// FromMillimeters builds a custom paper size from metric dimensions.
// Non-positive dimensions fail with INVALID_INPUT.
func FromMillimeters(widthMM, heightMM float64) (Size, error) {
	if widthMM <= 0 || heightMM <= 0 {
		return Size{}, errors.New(errors.ErrCodeInvalidInput,
			"custom paper dimensions must be greater than 0 mm, got %gx%g", widthMM, heightMM)
	}
	return Size{
		Width:  widthMM * pointsPerMillimeter,
		Height: heightMM * pointsPerMillimeter,
	}, nil
}

// Names returns the recognized paper size names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
