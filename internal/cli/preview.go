package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/binderykit/bindery/pkg/pdf"
	"github.com/binderykit/bindery/pkg/pipeline"
)

// newPreviewCmd creates the preview command, which renders only the first
// imposed sheet side so the geometry can be checked before a full run.
func newPreviewCmd() *cobra.Command {
	opts := imposeOpts{}

	cmd := &cobra.Command{
		Use:   "preview <pdf>",
		Short: "Render the first imposed sheet for a quick geometry check",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPreview(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", ".", "directory for the preview file")
	cmd.Flags().IntVar(&opts.sheets, "sheets", pipeline.DefaultSheets, "folded sheets per signature")
	cmd.Flags().IntVar(&opts.flyleafs, "flyleafs", pipeline.DefaultFlyleafs, "flyleaf sets at each end of the book")
	cmd.Flags().BoolVar(&opts.duplexRotate, "duplex-rotate", false, "swap back sides for printers that rotate on flip")
	cmd.Flags().StringVar(&opts.paperSize, "paper", "", "output paper size (default A4)")
	cmd.Flags().Float64Var(&opts.widthMM, "width", 0, "custom paper width in mm")
	cmd.Flags().Float64Var(&opts.heightMM, "height", 0, "custom paper height in mm")
	cmd.Flags().StringVar(&opts.scaling, "scaling", "", "page scaling: proportional, stretch, or original")
	cmd.Flags().StringVar(&opts.position, "position", "", "page position: centered or binding_aligned")

	return cmd
}

// runPreview writes the single-sheet preview and prints its slot geometry.
func runPreview(ctx context.Context, opts *imposeOpts, source string) error {
	logger := loggerFromContext(ctx)

	popts := opts.pipelineOptions(source)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	doc, err := pdf.Open(source)
	if err != nil {
		return err
	}

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

	out := filepath.Join(opts.outputDir, pdf.PreviewFilename(popts.SourceName))
	res, err := writer.WritePreview(doc, sigs, popts.DuplexRotate, out)
	if err != nil {
		return err
	}

	printSuccess("Wrote preview")
	printFile(res.Path)
	printKeyValue("sheet", fmt.Sprintf("%.1f x %.1f pt", res.OutputWidth, res.OutputHeight))
	printKeyValue("tokens", formatToken(res.PlacedTokens[0])+StyleDim.Render(" | ")+formatToken(res.PlacedTokens[1]))
	for i, slot := range res.Slots {
		side := "left"
		if i == 1 {
			side = "right"
		}
		if slot.Token.IsBlank() {
			printKeyValue(side+" slot", StyleDim.Render("blank"))
			continue
		}
		printKeyValue(side+" slot", fmt.Sprintf("%.1f x %.1f pt at (%.1f, %.1f)",
			slot.RenderedWidth, slot.RenderedHeight, slot.XOffset, slot.YOffset))
	}
	return nil
}
