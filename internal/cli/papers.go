package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binderykit/bindery/pkg/paper"
)

// newPapersCmd creates the papers command listing the output size catalog.
func newPapersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "papers",
		Short: "List supported output paper sizes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Supported paper sizes (points, portrait)"))
			for _, name := range paper.Names() {
				size, err := paper.Resolve(name)
				if err != nil {
					return err
				}
				label := name
				if name == paper.Default {
					label += " " + StyleDim.Render("(default)")
				}
				printKeyValue(label, fmt.Sprintf("%.1f x %.1f", size.Width, size.Height))
			}
			fmt.Println()
			fmt.Println(StyleDim.Render("Custom sizes: --width and --height in millimeters"))
			return nil
		},
	}
}
