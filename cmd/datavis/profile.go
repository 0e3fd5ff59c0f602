package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wdm0006/datavis/internal/analysis"
	"github.com/wdm0006/datavis/pkg/clean"
	"github.com/wdm0006/datavis/pkg/io/loader"
	"github.com/wdm0006/datavis/pkg/profile"
)

func newProfileCmd(a *app) *cobra.Command {
	var input string
	var asJSON bool
	var topK int
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Summarise columns before and after cleaning",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loader.LoadFile(input)
			if err != nil {
				return err
			}
			c, err := clean.New(clean.Options{NumericStrategy: clean.Strategy(a.cfg.Clean.NumericStrategy)})
			if err != nil {
				return err
			}
			res, err := analysis.FromFrame(cmd.Context(), raw, c)
			if err != nil {
				return err
			}
			before := profile.NewCollector(res.Raw.Schema(), topK)
			before.ConsumeFrame(res.Raw)
			after := profile.NewCollector(res.Clean.Schema(), topK)
			after.ConsumeFrame(res.Clean)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"before":      before.ReportJSON(),
					"after":       after.ReportJSON(),
					"dropped":     res.Report.Dropped,
					"numeric":     res.Types.Numeric,
					"categorical": res.Types.Categorical,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Before cleaning\n%s\nAfter cleaning\n%s", before.ReportText(), after.ReportText())
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report")
	cmd.Flags().IntVar(&topK, "top", 5, "frequent values to list per text column")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
