package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wdm0006/datavis/internal/analysis"
	"github.com/wdm0006/datavis/internal/api"
	"github.com/wdm0006/datavis/pkg/clean"
	"github.com/wdm0006/datavis/pkg/viz"
)

func newPlotCmd(a *app) *cobra.Command {
	var input, output, kind, numeric, categorical string
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Clean a file and render one chart",
		Long: "Clean a file and render one chart. --kind takes the dropdown name: " +
			`"Pairplot", "Correlation Heatmap", "Countplot (categorical)", "Boxplot (numeric vs category)" or "Histogram".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			if viz.MIMEType(format) == "" {
				return fmt.Errorf("unsupported image format %q", filepath.Ext(output))
			}
			c, err := clean.New(clean.Options{NumericStrategy: clean.Strategy(a.cfg.Clean.NumericStrategy)})
			if err != nil {
				return err
			}
			fh, err := os.Open(input)
			if err != nil {
				return err
			}
			defer fh.Close()
			res, err := analysis.Run(cmd.Context(), input, fh, c)
			if err != nil {
				return err
			}
			d := api.Visualizer(a.cfg.Chart, a.log)
			out, err := d.Render(cmd.Context(), res.Clean, res.Types, viz.Request{
				Kind:        viz.Kind(kind),
				Numeric:     numeric,
				Categorical: categorical,
				Format:      format,
			})
			if err != nil {
				return err
			}
			if !out.Rendered() {
				fmt.Fprintln(cmd.OutOrStdout(), out.Warning)
				return nil
			}
			if err := os.WriteFile(output, out.Chart.Image, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", output, out.Chart.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input file")
	cmd.Flags().StringVar(&output, "output", "chart.png", "image file; the extension selects png, svg, jpg or pdf")
	cmd.Flags().StringVar(&kind, "kind", string(viz.KindHistogram), "chart kind")
	cmd.Flags().StringVar(&numeric, "numeric", "", "numeric column (default: first numeric)")
	cmd.Flags().StringVar(&categorical, "categorical", "", "categorical column (default: first categorical)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
