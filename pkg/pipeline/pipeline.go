// Package pipeline provides the core imposition pipeline for Bindery.
//
// This package implements the complete read → order → plan → write pipeline
// that can be used by CLI and web components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Open and validate the source PDF
//  2. Order: Insert flyleafs, pad with blanks, split into signatures
//  3. Write: Plan slot geometry and render duplex booklet files
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(store, nil, logger)
//	opts := pipeline.Options{
//	    Source: "manuscript.pdf",
//	    Sheets: 6,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	booklet := result.Files[0]
package pipeline

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/paper"
	"github.com/binderykit/bindery/pkg/sheet"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Web
// =============================================================================

const (
	// DefaultSheets is the number of folded sheets per signature. Six sheets
	// give 24-page signatures, a common size for hand binding.
	DefaultSheets = 6

	// DefaultFlyleafs is the number of flyleaf sets inserted at each end.
	DefaultFlyleafs = 0
)

// DefaultScaling is the default page scaling mode.
const DefaultScaling = sheet.ScaleProportional

// DefaultPosition is the default page positioning mode.
const DefaultPosition = sheet.PositionCentered

// Output mode constants controlling which booklet files a run produces.
const (
	OutputAggregated = "aggregated"
	OutputSignatures = "signatures"
	OutputBoth       = "both"
)

// ValidOutputModes is the set of supported output modes.
var ValidOutputModes = map[string]bool{
	OutputAggregated: true,
	OutputSignatures: true,
	OutputBoth:       true,
}

// ParseOutputMode normalizes and validates an output mode string.
func ParseOutputMode(s string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(s))
	if mode == "" {
		return OutputAggregated, nil
	}
	if !ValidOutputModes[mode] {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"invalid output mode: %q (must be one of: aggregated, signatures, both)", s)
	}
	return mode, nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the imposition pipeline.
// This struct supports JSON serialization for web requests.
type Options struct {
	// Source options
	Source     string `json:"source"`
	SourceName string `json:"source_name,omitempty"` // Display name when Source is a temp path

	// Ordering options
	Flyleafs     int  `json:"flyleafs,omitempty"`
	Sheets       int  `json:"sheets,omitempty"`
	DuplexRotate bool `json:"duplex_rotate,omitempty"`

	// Geometry options
	PaperSize      string  `json:"paper_size,omitempty"`
	CustomWidthMM  float64 `json:"custom_width_mm,omitempty"`
	CustomHeightMM float64 `json:"custom_height_mm,omitempty"`
	Scaling        string  `json:"scaling,omitempty"`
	Position       string  `json:"position,omitempty"`

	// Mark options
	CropMarks      bool `json:"crop_marks,omitempty"`
	FoldMarks      bool `json:"fold_marks,omitempty"`
	SignatureOrder bool `json:"signature_order,omitempty"`

	// Output options
	OutputMode string `json:"output_mode,omitempty"`
	Preview    bool   `json:"preview,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Resolved during validation.
	paper    paper.Size
	scaling  sheet.ScalingMode
	position sheet.Position

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source PDF is required")
	}
	if o.SourceName == "" {
		o.SourceName = filepath.Base(o.Source)
	}

	if o.Sheets == 0 {
		o.Sheets = DefaultSheets
	}
	if o.Sheets < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"sheets per signature must be greater than 0, got %d", o.Sheets)
	}
	if o.Flyleafs < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"flyleaf sets must not be negative, got %d", o.Flyleafs)
	}

	if err := o.resolvePaper(); err != nil {
		return err
	}

	scaling, err := sheet.ParseScalingMode(o.Scaling)
	if err != nil {
		return err
	}
	o.scaling = scaling
	o.Scaling = string(scaling)

	position, err := sheet.ParsePosition(o.Position)
	if err != nil {
		return err
	}
	o.position = position
	o.Position = string(position)

	mode, err := ParseOutputMode(o.OutputMode)
	if err != nil {
		return err
	}
	o.OutputMode = mode

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// resolvePaper picks the output sheet size: custom metric dimensions when
// given, a named catalog size otherwise.
func (o *Options) resolvePaper() error {
	if o.CustomWidthMM != 0 || o.CustomHeightMM != 0 {
		size, err := paper.FromMillimeters(o.CustomWidthMM, o.CustomHeightMM)
		if err != nil {
			return err
		}
		o.paper = size
		return nil
	}

	name := o.PaperSize
	if name == "" {
		name = paper.Default
	}
	size, err := paper.Resolve(name)
	if err != nil {
		return err
	}
	o.PaperSize = name
	o.paper = size
	return nil
}

// Paper returns the resolved output sheet size. Only valid after
// ValidateAndSetDefaults.
func (o *Options) Paper() paper.Size {
	return o.paper
}

// Marks returns the print mark selection as planner options.
func (o *Options) Marks() sheet.MarkOptions {
	return sheet.MarkOptions{
		Crop:           o.CropMarks,
		Fold:           o.FoldMarks,
		SignatureOrder: o.SignatureOrder,
	}
}

// Planner builds a slot planner from the resolved geometry options. Only
// valid after ValidateAndSetDefaults.
func (o *Options) Planner() (*sheet.Planner, error) {
	return sheet.NewPlanner(o.paper, o.scaling, o.position)
}

// WantsAggregated reports whether the run produces the single combined
// booklet file.
func (o *Options) WantsAggregated() bool {
	return o.OutputMode == OutputAggregated || o.OutputMode == OutputBoth
}

// WantsSignatures reports whether the run produces one file per signature.
func (o *Options) WantsSignatures() bool {
	return o.OutputMode == OutputSignatures || o.OutputMode == OutputBoth
}
