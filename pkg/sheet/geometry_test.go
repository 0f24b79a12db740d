package sheet

import (
	"math"
	"testing"

	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/imposition"
	"github.com/binderykit/bindery/pkg/paper"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustPlanner(t *testing.T, p paper.Size, scaling ScalingMode, pos Position) *Planner {
	t.Helper()
	pl, err := NewPlanner(p, scaling, pos)
	if err != nil {
		t.Fatalf("NewPlanner error: %v", err)
	}
	return pl
}

func TestSlotScalingModes(t *testing.T) {
	// A wide 200x100 page into a 100x300 slot (paper 200x300)
	out := paper.Size{Width: 200, Height: 300}
	dims := []paper.Size{{Width: 200, Height: 100}}

	tests := []struct {
		mode             ScalingMode
		renderedW        float64
		renderedH        float64
		scaleX           float64
		scaleY           float64
	}{
		{ScaleProportional, 100, 50, 0.5, 0.5},
		{ScaleStretch, 100, 300, 0.5, 3.0},
		{ScaleOriginal, 200, 100, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			pl := mustPlanner(t, out, tt.mode, PositionCentered)
			g, err := pl.Slot(imposition.Page(0), 0, dims)
			if err != nil {
				t.Fatalf("Slot error: %v", err)
			}

			if !approx(g.SlotWidth, 100) || !approx(g.SlotHeight, 300) {
				t.Errorf("slot = %gx%g, want 100x300", g.SlotWidth, g.SlotHeight)
			}
			if !approx(g.RenderedWidth, tt.renderedW) || !approx(g.RenderedHeight, tt.renderedH) {
				t.Errorf("rendered = %gx%g, want %gx%g", g.RenderedWidth, g.RenderedHeight, tt.renderedW, tt.renderedH)
			}
			if !approx(g.ScaleX, tt.scaleX) || !approx(g.ScaleY, tt.scaleY) {
				t.Errorf("scales = %g/%g, want %g/%g", g.ScaleX, g.ScaleY, tt.scaleX, tt.scaleY)
			}
		})
	}
}

func TestSlotKeepsPageWithinSlotUnlessOriginal(t *testing.T) {
	out := paper.Size{Width: 200, Height: 300}
	dims := []paper.Size{{Width: 200, Height: 100}}

	for _, slotIndex := range []int{0, 1} {
		for _, tt := range []struct {
			mode     ScalingMode
			fitsSlot bool
		}{
			{ScaleProportional, true},
			{ScaleStretch, true},
			{ScaleOriginal, false},
		} {
			pl := mustPlanner(t, out, tt.mode, PositionCentered)
			g, err := pl.Slot(imposition.Page(0), slotIndex, dims)
			if err != nil {
				t.Fatalf("Slot error: %v", err)
			}

			if tt.fitsSlot {
				if g.RenderedWidth > g.SlotWidth || g.RenderedHeight > g.SlotHeight {
					t.Errorf("%s slot %d: rendered %gx%g overflows slot %gx%g",
						tt.mode, slotIndex, g.RenderedWidth, g.RenderedHeight, g.SlotWidth, g.SlotHeight)
				}
				if g.XOffset < g.SlotX || g.XOffset > g.SlotX+g.SlotWidth {
					t.Errorf("%s slot %d: x offset %g outside slot", tt.mode, slotIndex, g.XOffset)
				}
			} else {
				if g.RenderedWidth <= g.SlotWidth {
					t.Errorf("%s slot %d: expected overflow", tt.mode, slotIndex)
				}
				if g.XOffset >= g.SlotX {
					t.Errorf("%s slot %d: oversized page should overflow left of slot", tt.mode, slotIndex)
				}
			}
			if g.YOffset < 0 || g.YOffset > g.SlotHeight {
				t.Errorf("%s slot %d: y offset %g outside sheet", tt.mode, slotIndex, g.YOffset)
			}
		}
	}
}

func TestSlotPositioning(t *testing.T) {
	// A tall 400x1000 page on 600x500 paper: proportional scale 0.5,
	// rendered 200x500 in a 300x500 slot.
	out := paper.Size{Width: 600, Height: 500}
	dims := []paper.Size{{Width: 400, Height: 1000}}

	tests := []struct {
		name     string
		position Position
		leftX    float64
		rightX   float64
	}{
		{"centered", PositionCentered, 50, 350},
		{"binding aligned", PositionBinding, 100, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := mustPlanner(t, out, ScaleProportional, tt.position)

			left, err := pl.Slot(imposition.Page(0), 0, dims)
			if err != nil {
				t.Fatalf("left Slot error: %v", err)
			}
			right, err := pl.Slot(imposition.Page(0), 1, dims)
			if err != nil {
				t.Fatalf("right Slot error: %v", err)
			}

			if !approx(left.XOffset, tt.leftX) {
				t.Errorf("left x offset = %g, want %g", left.XOffset, tt.leftX)
			}
			if !approx(right.XOffset, tt.rightX) {
				t.Errorf("right x offset = %g, want %g", right.XOffset, tt.rightX)
			}
			if !approx(left.YOffset, 0) || !approx(right.YOffset, 0) {
				t.Errorf("y offsets = %g/%g, want 0/0", left.YOffset, right.YOffset)
			}
		})
	}
}

func TestSlotBlankTokenHasZeroRenderedSize(t *testing.T) {
	pl := mustPlanner(t, paper.Size{Width: 200, Height: 300}, ScaleProportional, PositionCentered)

	g, err := pl.Slot(imposition.Blank(), 1, []paper.Size{{Width: 200, Height: 100}})
	if err != nil {
		t.Fatalf("Slot error: %v", err)
	}

	if g.RenderedWidth != 0 || g.RenderedHeight != 0 {
		t.Errorf("rendered = %gx%g, want zero", g.RenderedWidth, g.RenderedHeight)
	}
	if g.ScaleX != 0 || g.ScaleY != 0 {
		t.Errorf("scales = %g/%g, want zero", g.ScaleX, g.ScaleY)
	}
	if _, ok := g.UniformScale(); ok {
		t.Error("blank slot must not report a uniform scale")
	}
	if !approx(g.XOffset, g.SlotX) {
		t.Errorf("x offset = %g, want slot origin %g", g.XOffset, g.SlotX)
	}
}

func TestSlotRejectsOutOfRangeToken(t *testing.T) {
	pl := mustPlanner(t, paper.Size{Width: 200, Height: 300}, ScaleProportional, PositionCentered)

	_, err := pl.Slot(imposition.Page(3), 0, []paper.Size{{Width: 100, Height: 100}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("want INVALID_INPUT, got %v", err)
	}
}

func TestUniformScale(t *testing.T) {
	out := paper.Size{Width: 200, Height: 300}
	dims := []paper.Size{{Width: 200, Height: 100}}

	pl := mustPlanner(t, out, ScaleProportional, PositionCentered)
	g, err := pl.Slot(imposition.Page(0), 0, dims)
	if err != nil {
		t.Fatalf("Slot error: %v", err)
	}
	if s, ok := g.UniformScale(); !ok || !approx(s, 0.5) {
		t.Errorf("UniformScale = %g,%t, want 0.5,true", s, ok)
	}

	pl = mustPlanner(t, out, ScaleStretch, PositionCentered)
	g, err = pl.Slot(imposition.Page(0), 0, dims)
	if err != nil {
		t.Fatalf("Slot error: %v", err)
	}
	if _, ok := g.UniformScale(); ok {
		t.Error("stretch with unequal scales must not report a uniform scale")
	}
}

func TestPlanSide(t *testing.T) {
	pl := mustPlanner(t, paper.Size{Width: 600, Height: 500}, ScaleProportional, PositionCentered)
	dims := []paper.Size{{Width: 400, Height: 1000}, {Width: 400, Height: 1000}}

	side := imposition.ImposedSide{Face: imposition.FaceFront, Left: imposition.Page(1), Right: imposition.Blank()}
	plan, err := pl.PlanSide(side, dims)
	if err != nil {
		t.Fatalf("PlanSide error: %v", err)
	}

	if plan.Side != side {
		t.Errorf("plan side = %v, want %v", plan.Side, side)
	}
	if plan.Slots[0].SlotIndex != 0 || plan.Slots[1].SlotIndex != 1 {
		t.Error("slots out of order")
	}
	if plan.Slots[0].Token != imposition.Page(1) {
		t.Errorf("left token = %v, want 1", plan.Slots[0].Token)
	}
	if !plan.Slots[1].Token.IsBlank() {
		t.Errorf("right token = %v, want blank", plan.Slots[1].Token)
	}
}

func TestNewPlannerValidation(t *testing.T) {
	tests := []struct {
		name     string
		paper    paper.Size
		scaling  ScalingMode
		position Position
	}{
		{"zero width", paper.Size{Width: 0, Height: 100}, ScaleProportional, PositionCentered},
		{"negative height", paper.Size{Width: 100, Height: -1}, ScaleProportional, PositionCentered},
		{"bad scaling", paper.Size{Width: 100, Height: 100}, "zoom", PositionCentered},
		{"bad position", paper.Size{Width: 100, Height: 100}, ScaleProportional, "outer_aligned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPlanner(tt.paper, tt.scaling, tt.position); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("want INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestParsePositionNormalizes(t *testing.T) {
	for _, s := range []string{"binding_aligned", "binding-aligned", "binding"} {
		got, err := ParsePosition(s)
		if err != nil {
			t.Fatalf("ParsePosition(%q) error: %v", s, err)
		}
		if got != PositionBinding {
			t.Errorf("ParsePosition(%q) = %q, want %q", s, got, PositionBinding)
		}
	}

	if _, err := ParsePosition("outer_aligned"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("want INVALID_INPUT, got %v", err)
	}
}
