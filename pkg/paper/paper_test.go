package paper

import (
	"sort"
	"testing"

	"github.com/binderykit/bindery/pkg/errors"
)

func TestResolveKnownSizes(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		height float64
	}{
		{"A4", 595.2756, 841.8898},
		{"Letter", 612.0, 792.0},
		{"Tabloid", 792.0, 1224.0},
	}

	for _, tt := range tests {
		got, err := Resolve(tt.name)
		if err != nil {
			t.Fatalf("Resolve(%s) error: %v", tt.name, err)
		}
		if got.Width != tt.width || got.Height != tt.height {
			t.Errorf("Resolve(%s) = %v, want %gx%g", tt.name, got, tt.width, tt.height)
		}
	}
}

func TestResolvePortraitOrientation(t *testing.T) {
	for _, name := range Names() {
		s, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%s) error: %v", name, err)
		}
		if s.Width >= s.Height {
			t.Errorf("%s: width %g >= height %g, catalog must be portrait", name, s.Width, s.Height)
		}
	}
}

func TestResolveUnknownSize(t *testing.T) {
	_, err := Resolve("B5")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("want INVALID_INPUT, got %v", err)
	}
}

func TestFromMillimeters(t *testing.T) {
	got, err := FromMillimeters(210, 297)
	if err != nil {
		t.Fatalf("FromMillimeters error: %v", err)
	}
	// A4 in points, within rounding of the catalog entry
	if diff := got.Width - 595.2756; diff > 0.2 || diff < -0.2 {
		t.Errorf("width = %g, want ~595.28", got.Width)
	}
	if diff := got.Height - 841.8898; diff > 0.2 || diff < -0.2 {
		t.Errorf("height = %g, want ~841.89", got.Height)
	}

	for _, tt := range [][2]float64{{0, 297}, {210, 0}, {-1, 297}, {210, -5}} {
		if _, err := FromMillimeters(tt[0], tt[1]); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("FromMillimeters(%g, %g): want INVALID_INPUT, got %v", tt[0], tt[1], err)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("empty catalog")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
}
