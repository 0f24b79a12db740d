package pdf

import (
	"os"
	"path/filepath"

	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"

	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/imposition"
	"github.com/binderykit/bindery/pkg/sheet"
)

// Writer renders imposed signatures onto paper-sized output sheets.
//
// One output page is produced per imposed side, two slots per page. Source
// pages are imported as templates from the document's file and placed
// according to the planner's slot geometry, so every scaling and positioning
// mode the planner supports is honored exactly.
type Writer struct {
	planner *sheet.Planner
	marks   sheet.MarkOptions
}

// NewWriter creates a writer that places pages per the given planner and
// draws the selected print marks.
func NewWriter(planner *sheet.Planner, marks sheet.MarkOptions) *Writer {
	return &Writer{planner: planner, marks: marks}
}

// WriteResult describes one generated output file.
type WriteResult struct {
	Path         string
	PageCount    int
	PlacedTokens [][2]imposition.PageRef
}

// PreviewResult describes a generated first-sheet preview.
type PreviewResult struct {
	Path         string
	PageCount    int
	PlacedTokens [2]imposition.PageRef
	OutputWidth  float64
	OutputHeight float64
	Slots        [2]sheet.SlotGeometry
}

// WriteBooklet imposes all signatures and writes the aggregated duplex
// booklet to outPath, creating parent directories as needed.
func (w *Writer) WriteBooklet(doc *Document, sigs []imposition.Signature, duplexRotate bool, outPath string) (*WriteResult, error) {
	out, imp := w.newOutput()
	result := &WriteResult{Path: outPath}

	for sigIndex, sig := range sigs {
		sides, err := imposition.ImposeSignature(sig, duplexRotate)
		if err != nil {
			return nil, err
		}
		for sideIndex, side := range sides {
			plan, err := w.planner.PlanSide(side, doc.PageDims)
			if err != nil {
				return nil, err
			}
			pos := sheet.SheetPosition{
				Signature:  sigIndex,
				Signatures: len(sigs),
				Sheet:      sideIndex / 2,
				Sheets:     len(sig) / 4,
				Face:       string(side.Face),
			}
			if err := w.addSide(out, imp, doc, plan, pos); err != nil {
				return nil, err
			}
			result.PlacedTokens = append(result.PlacedTokens, [2]imposition.PageRef{side.Left, side.Right})
			result.PageCount++
		}
	}

	if err := writeOut(out, outPath); err != nil {
		return nil, err
	}
	return result, nil
}

// WriteSignature imposes a single signature and writes it as its own duplex
// booklet file. Used by the per-signature output mode, where each folded
// section is printed separately.
func (w *Writer) WriteSignature(doc *Document, sig imposition.Signature, sigIndex, sigCount int, duplexRotate bool, outPath string) (*WriteResult, error) {
	out, imp := w.newOutput()
	result := &WriteResult{Path: outPath}

	sides, err := imposition.ImposeSignature(sig, duplexRotate)
	if err != nil {
		return nil, err
	}
	for sideIndex, side := range sides {
		plan, err := w.planner.PlanSide(side, doc.PageDims)
		if err != nil {
			return nil, err
		}
		pos := sheet.SheetPosition{
			Signature:  sigIndex,
			Signatures: sigCount,
			Sheet:      sideIndex / 2,
			Sheets:     len(sig) / 4,
			Face:       string(side.Face),
		}
		if err := w.addSide(out, imp, doc, plan, pos); err != nil {
			return nil, err
		}
		result.PlacedTokens = append(result.PlacedTokens, [2]imposition.PageRef{side.Left, side.Right})
		result.PageCount++
	}

	if err := writeOut(out, outPath); err != nil {
		return nil, err
	}
	return result, nil
}

// WritePreview writes only the very first imposed side as a single-page
// preview and reports its slot geometry.
func (w *Writer) WritePreview(doc *Document, sigs []imposition.Signature, duplexRotate bool, outPath string) (*PreviewResult, error) {
	var first *imposition.ImposedSide
	for _, sig := range sigs {
		sides, err := imposition.ImposeSignature(sig, duplexRotate)
		if err != nil {
			return nil, err
		}
		if len(sides) > 0 {
			first = &sides[0]
			break
		}
	}
	if first == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot generate preview for an empty imposed document")
	}

	plan, err := w.planner.PlanSide(*first, doc.PageDims)
	if err != nil {
		return nil, err
	}

	out, imp := w.newOutput()
	pos := sheet.SheetPosition{Signatures: len(sigs), Sheets: len(sigs[0]) / 4, Face: string(first.Face)}
	if err := w.addSide(out, imp, doc, plan, pos); err != nil {
		return nil, err
	}
	if err := writeOut(out, outPath); err != nil {
		return nil, err
	}

	size := w.planner.Paper()
	return &PreviewResult{
		Path:         outPath,
		PageCount:    1,
		PlacedTokens: [2]imposition.PageRef{first.Left, first.Right},
		OutputWidth:  size.Width,
		OutputHeight: size.Height,
		Slots:        plan.Slots,
	}, nil
}

// newOutput creates an empty output document on the planner's paper size
// together with a page importer.
func (w *Writer) newOutput() (*gofpdf.Fpdf, *gofpdi.Importer) {
	size := w.planner.Paper()
	out := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	out.SetAutoPageBreak(false, 0)
	return out, gofpdi.NewImporter()
}

// addSide appends one output page and places the side's two slots onto it.
func (w *Writer) addSide(out *gofpdf.Fpdf, imp *gofpdi.Importer, doc *Document, plan sheet.SidePlan, pos sheet.SheetPosition) error {
	size := w.planner.Paper()
	out.AddPageFormat("P", gofpdf.SizeType{Wd: size.Width, Ht: size.Height})

	for _, slot := range plan.Slots {
		if slot.Token.IsBlank() {
			continue
		}
		tpl := imp.ImportPage(out, doc.Path, slot.Token.Index()+1, "/MediaBox")
		// gofpdf uses a top-left origin; the planner's offsets are
		// bottom-left PDF coordinates.
		yTop := size.Height - slot.YOffset - slot.RenderedHeight
		imp.UseImportedTemplate(out, tpl, slot.XOffset, yTop, slot.RenderedWidth, slot.RenderedHeight)
	}

	if w.marks.Any() {
		drawMarks(out, size.Height, sheet.Marks(size.Width, size.Height, w.marks, pos))
	}

	if out.Err() {
		return errors.Wrap(errors.ErrCodePDF, out.Error(), "placing pages onto output sheet")
	}
	return nil
}

// drawMarks renders planner-computed mark geometry with gofpdf primitives,
// converting bottom-left coordinates to gofpdf's top-left origin.
func drawMarks(out *gofpdf.Fpdf, sheetHeight float64, m sheet.MarkSet) {
	out.SetDrawColor(0, 0, 0)
	out.SetLineWidth(0.5)
	for _, l := range append(m.Crop, m.Fold...) {
		out.Line(l.X1, sheetHeight-l.Y1, l.X2, sheetHeight-l.Y2)
	}
	if m.Label != nil {
		out.SetFont("Helvetica", "", 6)
		out.SetTextColor(0, 0, 0)
		out.Text(m.Label.X, sheetHeight-m.Label.Y, m.Label.Text)
	}
}

// writeOut finalizes the document to disk, creating parent directories.
func writeOut(out *gofpdf.Fpdf, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "creating output directory %s", dir)
		}
	}
	if err := out.OutputFileAndClose(path); err != nil {
		return errors.Wrap(errors.ErrCodePDF, err, "writing %s", path)
	}
	return nil
}
