// Package cli implements the bindery command-line interface.
//
// This package provides commands for imposing PDFs into foldable duplex
// booklets, inspecting imposition plans, listing paper sizes, and running
// the web service. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - impose: Rearrange a PDF into bookbinding signatures
//   - preview: Render only the first imposed sheet
//   - plan: Print the signature layout without writing any PDF
//   - papers: List supported output paper sizes
//   - serve: Run the web upload service
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/binderykit/bindery/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/binderykit/bindery/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "bindery"

// Execute runs the bindery CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Bindery rearranges PDFs into foldable bookbinding signatures",
		Long:         `Bindery is a CLI tool for bookbinders: it reorders the pages of a PDF into nested duplex signatures so the printed sheets fold into correctly ordered booklet sections.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newImposeCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newPapersCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
