package sheet

import (
	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/imposition"
	"github.com/binderykit/bindery/pkg/paper"
)

// ScalingMode controls how a source page is scaled into its slot.
type ScalingMode string

// Supported scaling modes.
const (
	ScaleProportional ScalingMode = "proportional"
	ScaleStretch      ScalingMode = "stretch"
	ScaleOriginal     ScalingMode = "original"
)

// ParseScalingMode validates a scaling mode string.
func ParseScalingMode(s string) (ScalingMode, error) {
	switch ScalingMode(s) {
	case ScaleProportional, ScaleStretch, ScaleOriginal:
		return ScalingMode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unsupported scaling mode %q, expected one of: proportional, stretch, original", s)
}

// Position controls where a scaled page sits within its slot.
type Position string

// Supported positioning modes.
const (
	PositionCentered Position = "centered"
	PositionBinding  Position = "binding_aligned"
)

// ParsePosition validates a positioning mode string. The hyphenated form
// "binding-aligned" and the short form "binding" normalize to
// PositionBinding.
func ParsePosition(s string) (Position, error) {
	switch s {
	case string(PositionCentered):
		return PositionCentered, nil
	case string(PositionBinding), "binding-aligned", "binding":
		return PositionBinding, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unsupported positioning mode %q, expected centered or binding_aligned", s)
}

// SlotGeometry describes the placement of one token within one slot of an
// output sheet side. Offsets are absolute bottom-left coordinates on the
// sheet. Blank slots have zero rendered size and zero scales.
type SlotGeometry struct {
	Token      imposition.PageRef
	SlotIndex  int // 0 = left, 1 = right
	SlotX      float64
	SlotY      float64
	SlotWidth  float64
	SlotHeight float64

	RenderedWidth  float64
	RenderedHeight float64
	XOffset        float64
	YOffset        float64
	ScaleX         float64
	ScaleY         float64
}

// UniformScale returns the single scale factor and true when the slot was
// scaled uniformly (proportional or original mode on a placed page).
func (g SlotGeometry) UniformScale() (float64, bool) {
	if g.Token.IsBlank() || g.ScaleX != g.ScaleY {
		return 0, false
	}
	return g.ScaleX, true
}

// SidePlan is the placement plan for one imposed sheet side: the side itself
// plus the geometry of its left and right slots.
type SidePlan struct {
	Side  imposition.ImposedSide
	Slots [2]SlotGeometry
}

// Planner computes slot geometry for imposed sides on a fixed paper size.
type Planner struct {
	paper    paper.Size
	scaling  ScalingMode
	position Position
}

// NewPlanner creates a planner for the given paper dimensions. Zero or
// negative dimensions and unknown modes fail with INVALID_INPUT.
func NewPlanner(p paper.Size, scaling ScalingMode, position Position) (*Planner, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "paper dimensions must be > 0, got %gx%g", p.Width, p.Height)
	}
	if _, err := ParseScalingMode(string(scaling)); err != nil {
		return nil, err
	}
	if _, err := ParsePosition(string(position)); err != nil {
		return nil, err
	}
	return &Planner{paper: p, scaling: scaling, position: position}, nil
}

// Paper returns the output paper dimensions.
func (p *Planner) Paper() paper.Size {
	return p.paper
}

// Slot computes the geometry for placing token into slot slotIndex (0 left,
// 1 right). dims holds the source document's page dimensions; a token whose
// index falls outside dims fails with INVALID_INPUT, honoring the contract
// that every token is either a valid page index or the blank sentinel.
func (p *Planner) Slot(token imposition.PageRef, slotIndex int, dims []paper.Size) (SlotGeometry, error) {
	if slotIndex != 0 && slotIndex != 1 {
		return SlotGeometry{}, errors.New(errors.ErrCodeInvalidInput, "slot index must be 0 or 1, got %d", slotIndex)
	}

	slotWidth := p.paper.Width / 2
	slotHeight := p.paper.Height
	slotX := 0.0
	if slotIndex == 1 {
		slotX = slotWidth
	}

	g := SlotGeometry{
		Token:      token,
		SlotIndex:  slotIndex,
		SlotX:      slotX,
		SlotWidth:  slotWidth,
		SlotHeight: slotHeight,
	}

	if token.IsBlank() {
		g.XOffset = slotX
		return g, nil
	}
	if token.Index() >= len(dims) {
		return SlotGeometry{}, errors.New(errors.ErrCodeInvalidInput,
			"expected page index or blank token, got page %d of a %d-page document", token.Index(), len(dims))
	}

	src := dims[token.Index()]
	scaleX, scaleY := resolveScales(src, slotWidth, slotHeight, p.scaling)
	g.ScaleX = scaleX
	g.ScaleY = scaleY
	g.RenderedWidth = src.Width * scaleX
	g.RenderedHeight = src.Height * scaleY
	g.XOffset = slotX + horizontalOffset(slotIndex, slotWidth, g.RenderedWidth, p.position)
	g.YOffset = (slotHeight - g.RenderedHeight) / 2
	return g, nil
}

// PlanSide computes the slot geometry for both halves of one imposed side.
func (p *Planner) PlanSide(side imposition.ImposedSide, dims []paper.Size) (SidePlan, error) {
	left, err := p.Slot(side.Left, 0, dims)
	if err != nil {
		return SidePlan{}, err
	}
	right, err := p.Slot(side.Right, 1, dims)
	if err != nil {
		return SidePlan{}, err
	}
	return SidePlan{Side: side, Slots: [2]SlotGeometry{left, right}}, nil
}

// PlanSides plans every imposed side in order.
func (p *Planner) PlanSides(sides []imposition.ImposedSide, dims []paper.Size) ([]SidePlan, error) {
	plans := make([]SidePlan, 0, len(sides))
	for _, side := range sides {
		plan, err := p.PlanSide(side, dims)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// resolveScales returns the x and y scale factors for fitting a source page
// into a slot. The mode is validated at planner construction.
func resolveScales(src paper.Size, slotWidth, slotHeight float64, mode ScalingMode) (float64, float64) {
	switch mode {
	case ScaleStretch:
		return slotWidth / src.Width, slotHeight / src.Height
	case ScaleOriginal:
		return 1.0, 1.0
	default: // proportional
		scale := slotWidth / src.Width
		if s := slotHeight / src.Height; s < scale {
			scale = s
		}
		return scale, scale
	}
}

// horizontalOffset returns the x offset of the rendered page relative to the
// slot origin. Centered splits the spare width evenly; binding_aligned
// pushes the page against the spine, i.e. the inner edge of its slot.
func horizontalOffset(slotIndex int, slotWidth, renderedWidth float64, position Position) float64 {
	if position == PositionBinding {
		if slotIndex == 0 {
			return slotWidth - renderedWidth
		}
		return 0
	}
	return (slotWidth - renderedWidth) / 2
}
