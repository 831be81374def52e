package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yildizm/speedx/internal/ui"
	"github.com/yildizm/speedx/internal/ui/components"
)

func newRenderCommand() *cobra.Command {
	var (
		label       string
		size        int
		strokeWidth int
		svg         bool
	)

	cmd := &cobra.Command{
		Use:   "render <progress>",
		Short: "Render a single score indicator",
		Long: `Render the circular indicator for one score without contacting the service.
Progress is rounded for display but not clamped, so values outside 0..100
render the same way the interactive client would show them.

Examples:
  speedx render 87.4
  speedx render 42 --label SEO --size 200
  speedx render 97.6 --svg > ring.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid progress %q: %w", args[0], err)
			}

			cfg := GetGlobalConfig()
			if !cmd.Flag("size").Changed {
				size = cfg.UI.IndicatorSize
			}
			if !cmd.Flag("stroke-width").Changed {
				strokeWidth = cfg.UI.StrokeWidth
			}
			if size < 1 || strokeWidth < 1 || strokeWidth >= size {
				return fmt.Errorf("stroke width must be between 1 and size-1 (size=%d, stroke=%d)", size, strokeWidth)
			}

			ring := components.RenderCircular(label, progress, size, strokeWidth)
			out := cmd.OutOrStdout()

			if svg {
				_, err := fmt.Fprint(out, ring.SVG())
				return err
			}

			theme, _ := ui.ThemeByName(cfg.UI.Theme)
			fmt.Fprintln(out, ring.ViewWith(theme.Palette(ring.Display)))
			if isVerbose() {
				fmt.Fprintf(out, "\ndisplay=%d radius=%g circumference=%.4f dashoffset=%.4f\n",
					ring.Display, ring.Radius, ring.Circumference, ring.DashOffset)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "Score", "label under the indicator")
	cmd.Flags().IntVar(&size, "size", 120, "indicator diameter")
	cmd.Flags().IntVar(&strokeWidth, "stroke-width", 14, "ring width")
	cmd.Flags().BoolVar(&svg, "svg", false, "print an SVG document instead of the terminal ring")

	return cmd
}
