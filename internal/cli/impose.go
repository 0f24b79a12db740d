package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/binderykit/bindery/pkg/pdf"
	"github.com/binderykit/bindery/pkg/pipeline"
)

// imposeOpts holds the command-line flags for the impose command.
type imposeOpts struct {
	outputDir    string  // directory for generated files
	sheets       int     // folded sheets per signature
	flyleafs     int     // flyleaf sets at each end
	duplexRotate bool    // flip the backs for rotating duplex printers
	paperSize    string  // named output paper size
	widthMM      float64 // custom paper width in millimeters
	heightMM     float64 // custom paper height in millimeters
	scaling      string  // proportional, stretch, or original
	position     string  // centered or binding_aligned
	cropMarks    bool
	foldMarks    bool
	sigOrder     bool   // print signature order labels
	mode         string // aggregated, signatures, or both
	preview      bool   // also write a first-sheet preview
}

// pipelineOptions converts the flags into validated pipeline options.
func (o *imposeOpts) pipelineOptions(source string) pipeline.Options {
	return pipeline.Options{
		Source:         source,
		Sheets:         o.sheets,
		Flyleafs:       o.flyleafs,
		DuplexRotate:   o.duplexRotate,
		PaperSize:      o.paperSize,
		CustomWidthMM:  o.widthMM,
		CustomHeightMM: o.heightMM,
		Scaling:        o.scaling,
		Position:       o.position,
		CropMarks:      o.cropMarks,
		FoldMarks:      o.foldMarks,
		SignatureOrder: o.sigOrder,
		OutputMode:     o.mode,
		Preview:        o.preview,
	}
}

// newImposeCmd creates the impose command.
//
// Default options:
//   - sheets: 6 folded sheets per signature (24 pages)
//   - paper: A4 output sheets
//   - scaling: proportional, centered
func newImposeCmd() *cobra.Command {
	opts := imposeOpts{}

	cmd := &cobra.Command{
		Use:   "impose <pdf>",
		Short: "Rearrange a PDF into foldable duplex booklet signatures",
		Long: `Impose reorders the pages of a PDF into nested bookbinding signatures,
two source pages per output sheet side, so printed duplex sheets fold into
correctly ordered booklet sections.

Examples:
  bindery impose manuscript.pdf                       # A4 booklet, 6-sheet signatures
  bindery impose manuscript.pdf --sheets 4 --flyleafs 1
  bindery impose manuscript.pdf --mode signatures     # one file per signature
  bindery impose manuscript.pdf --paper Letter --duplex-rotate`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runImpose(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", ".", "directory for generated files")
	cmd.Flags().IntVar(&opts.sheets, "sheets", pipeline.DefaultSheets, "folded sheets per signature")
	cmd.Flags().IntVar(&opts.flyleafs, "flyleafs", pipeline.DefaultFlyleafs, "flyleaf sets at each end of the book")
	cmd.Flags().BoolVar(&opts.duplexRotate, "duplex-rotate", false, "swap back sides for printers that rotate on flip")
	cmd.Flags().StringVar(&opts.paperSize, "paper", "", "output paper size (default A4, see 'bindery papers')")
	cmd.Flags().Float64Var(&opts.widthMM, "width", 0, "custom paper width in mm (overrides --paper)")
	cmd.Flags().Float64Var(&opts.heightMM, "height", 0, "custom paper height in mm (overrides --paper)")
	cmd.Flags().StringVar(&opts.scaling, "scaling", "", "page scaling: proportional, stretch, or original")
	cmd.Flags().StringVar(&opts.position, "position", "", "page position: centered or binding_aligned")
	cmd.Flags().BoolVar(&opts.cropMarks, "crop-marks", false, "draw corner crop marks")
	cmd.Flags().BoolVar(&opts.foldMarks, "fold-marks", false, "draw fold marks on the spine line")
	cmd.Flags().BoolVar(&opts.sigOrder, "signature-order", false, "label each sheet with its signature position")
	cmd.Flags().StringVar(&opts.mode, "mode", pipeline.OutputAggregated, "output mode: aggregated, signatures, or both")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "also write a first-sheet preview file")

	return cmd
}

// runImpose executes the full imposition and writes the selected files into
// the output directory.
func runImpose(ctx context.Context, opts *imposeOpts, source string) error {
	logger := loggerFromContext(ctx)

	popts := opts.pipelineOptions(source)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	doc, err := pdf.Open(source)
	if err != nil {
		return err
	}
	logger.Debugf("Read %s: %d pages", source, doc.PageCount)

	runner := pipeline.NewRunner(nil, nil, logger)
	sigs, err := runner.Order(doc.PageCount, popts)
	if err != nil {
		return err
	}

	planner, err := popts.Planner()
	if err != nil {
		return err
	}
	writer := pdf.NewWriter(planner, popts.Marks())

	prog := newProgress(logger)
	spin := startSpinner(ctx, fmt.Sprintf("Imposing %d signatures...", len(sigs)))
	var files []string

	if popts.WantsAggregated() {
		out := filepath.Join(opts.outputDir, pdf.OutputFilename(popts.SourceName))
		res, err := writer.WriteBooklet(doc, sigs, popts.DuplexRotate, out)
		if err != nil {
			spin.stop()
			return err
		}
		files = append(files, res.Path)
	}
	if popts.WantsSignatures() {
		for i, sig := range sigs {
			if err := ctx.Err(); err != nil {
				spin.stop()
				return err
			}
			out := filepath.Join(opts.outputDir, pdf.SignatureFilename(popts.SourceName, i))
			res, err := writer.WriteSignature(doc, sig, i, len(sigs), popts.DuplexRotate, out)
			if err != nil {
				spin.stop()
				return err
			}
			files = append(files, res.Path)
		}
	}
	if popts.Preview {
		out := filepath.Join(opts.outputDir, pdf.PreviewFilename(popts.SourceName))
		res, err := writer.WritePreview(doc, sigs, popts.DuplexRotate, out)
		if err != nil {
			spin.stop()
			return err
		}
		files = append(files, res.Path)
	}
	spin.stop()

	total := 0
	for _, sig := range sigs {
		total += len(sig)
	}
	prog.done(fmt.Sprintf("Imposed %d pages into %d signatures", total, len(sigs)))

	printSuccess("Wrote %d file(s)", len(files))
	for _, f := range files {
		printFile(f)
	}
	if popts.DuplexRotate {
		printInfo("Back sides are swapped for duplex rotation")
	}
	return nil
}
