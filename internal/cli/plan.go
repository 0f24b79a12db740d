package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/binderykit/bindery/pkg/imposition"
	"github.com/binderykit/bindery/pkg/pdf"
	"github.com/binderykit/bindery/pkg/pipeline"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	sheets       int
	flyleafs     int
	duplexRotate bool
	jsonOutput   bool
}

// planReport is the computed imposition layout for display.
type planReport struct {
	SourcePages int                        `json:"source_pages"`
	TotalPages  int                        `json:"total_pages"`
	BlankPages  int                        `json:"blank_pages"`
	Signatures  []imposition.Signature     `json:"signatures"`
	Sides       [][]imposition.ImposedSide `json:"sides"` // per signature
}

// newPlanCmd creates the plan command, which prints the signature layout
// without writing any PDF. The argument is either a PDF file or a bare page
// count, so layouts can be explored before a manuscript exists.
func newPlanCmd() *cobra.Command {
	opts := planOpts{}

	cmd := &cobra.Command{
		Use:   "plan <pdf-or-page-count>",
		Short: "Print the signature layout without writing any PDF",
		Long: `Plan computes the page ordering, signature split, and duplex sheet layout
and prints it as text.

Examples:
  bindery plan manuscript.pdf
  bindery plan 96 --sheets 4
  bindery plan 9 --duplex-rotate`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPlan(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.sheets, "sheets", pipeline.DefaultSheets, "folded sheets per signature")
	cmd.Flags().IntVar(&opts.flyleafs, "flyleafs", pipeline.DefaultFlyleafs, "flyleaf sets at each end of the book")
	cmd.Flags().BoolVar(&opts.duplexRotate, "duplex-rotate", false, "swap back sides for printers that rotate on flip")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "emit the plan as JSON")

	return cmd
}

// buildPlan computes the full imposition layout for a page count.
func buildPlan(pageCount int, opts *planOpts) (*planReport, error) {
	ordered, err := imposition.BuildOrderedPages(imposition.PageRange(pageCount), opts.flyleafs)
	if err != nil {
		return nil, err
	}
	sigs, err := imposition.SplitSignatures(ordered, opts.sheets)
	if err != nil {
		return nil, err
	}

	report := &planReport{SourcePages: pageCount, Signatures: sigs}
	for _, sig := range sigs {
		report.TotalPages += len(sig)
		sides, err := imposition.ImposeSignature(sig, opts.duplexRotate)
		if err != nil {
			return nil, err
		}
		report.Sides = append(report.Sides, sides)
	}
	report.BlankPages = report.TotalPages - pageCount
	return report, nil
}

// runPlan resolves the page count from the argument and prints the layout.
func runPlan(ctx context.Context, opts *planOpts, arg string) error {
	pageCount, err := resolvePageCount(arg)
	if err != nil {
		return err
	}

	report, err := buildPlan(pageCount, opts)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%d pages → %d signatures", report.SourcePages, len(report.Signatures))))
	printKeyValue("total pages", strconv.Itoa(report.TotalPages))
	printKeyValue("blanks", strconv.Itoa(report.BlankPages))
	printKeyValue("flyleaf sets", strconv.Itoa(opts.flyleafs))

	for i, sides := range report.Sides {
		fmt.Println()
		printInfo("signature %d/%d (%d pages)", i+1, len(report.Signatures), len(report.Signatures[i]))
		for j, side := range sides {
			printSide(j/2, side)
		}
	}

	if report.BlankPages > 0 {
		fmt.Println()
		printWarning("%d blank page(s) will be added", report.BlankPages)
	}
	return nil
}

// resolvePageCount interprets arg as a bare page count or as a PDF file.
func resolvePageCount(arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("page count must be greater than 0, got %d", n)
		}
		return n, nil
	}
	doc, err := pdf.Open(arg)
	if err != nil {
		return 0, err
	}
	return doc.PageCount, nil
}
