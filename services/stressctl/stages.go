package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
)

func newStagesCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Print the per-stage reference tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := stress.Profiles()
			switch output {
			case "json":
				return writeJSON(cmd.OutOrStdout(), profiles)
			case "text":
			default:
				return fmt.Errorf("invalid output format %q", output)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STAGE\tPPFD\tPHOTOPERIOD\tDLI\tVPD\tAIR °C\tR:B\tEC\tWEIGHTS L/V/N/T/W")
			for _, p := range profiles {
				w := p.Weights
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.1f\t%.1f\t%.2f/%.2f/%.2f/%.2f/%.2f\n",
					p.Stage, span(p.PPFD), span(p.Photoperiod), span(p.DLI), span(p.VPD), span(p.AirTemp),
					p.RedBlueRatio, p.IdealEC, w.Light, w.VPD, w.Nutrient, w.Thermal, w.Water)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: json or text")
	return cmd
}

func span(r stress.Range) string {
	return fmt.Sprintf("%g–%g (%g)", r.Min, r.Max, r.Optimal)
}
