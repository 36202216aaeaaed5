package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
)

// historyFile is a chronological list of prior overall indices.
type historyFile struct {
	Zone    string    `yaml:"zone"`
	Indices []float64 `yaml:"indices"`
}

func newTrendCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Summarize a history of overall indices",
		Long: `Reads a YAML or JSON file with an "indices" list (oldest first) and prints
the mean, peak, 90th percentile, severe count and trend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			var history historyFile
			if err := yaml.Unmarshal(raw, &history); err != nil {
				return fmt.Errorf("decode history: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				Zone string `json:"zone,omitempty"`
				stress.HistorySummary
			}{history.Zone, stress.Summarize(history.Indices)})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "history file (YAML or JSON, - for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
