package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
)

type evaluateOptions struct {
	file   string
	output string
	strict bool
	at     string
}

func newEvaluateCmd(state *cliState) *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a snapshot file",
		Long: `Reads a snapshot (environment, nutrients, plant) from a YAML or JSON file
and prints the stress result.

Example:
  stressctl evaluate -f zone-a.yaml --output text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, state, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "snapshot file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "output format: json or text")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject unknown growth stages instead of scoring them as vegetative")
	cmd.Flags().StringVar(&opts.at, "at", "", "evaluation time (RFC3339, default now)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runEvaluate(cmd *cobra.Command, state *cliState, opts *evaluateOptions) error {
	if opts.output != "json" && opts.output != "text" {
		return fmt.Errorf("invalid output format %q", opts.output)
	}

	at := time.Now().UTC()
	if opts.at != "" {
		parsed, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		at = parsed.UTC()
	}

	raw, err := readInput(cmd, opts.file)
	if err != nil {
		return err
	}
	snap, err := decodeSnapshot(raw, opts.strict)
	if err != nil {
		return err
	}

	result := stress.Evaluate(snap, at)
	if result.StageFallback {
		state.logger.Warn("unknown growth stage, scored as vegetative", zap.String("file", opts.file))
	}

	if opts.output == "text" {
		return writeResultText(cmd.OutOrStdout(), result)
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

// decodeSnapshot parses YAML (and therefore JSON). In strict mode the stage
// name must be one ParseGrowthStage accepts.
func decodeSnapshot(raw []byte, strict bool) (stress.Snapshot, error) {
	var snap stress.Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	if !strict {
		return snap, nil
	}

	var names struct {
		Plant struct {
			Stage string `yaml:"stage"`
		} `yaml:"plant"`
	}
	if err := yaml.Unmarshal(raw, &names); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	stage, err := stress.ParseGrowthStage(names.Plant.Stage)
	if err != nil {
		return snap, err
	}
	snap.Plant.Stage = stage
	return snap, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultText(w io.Writer, r stress.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	stage := r.Stage.String()
	if r.StageFallback {
		stage += " (fallback)"
	}
	fmt.Fprintf(tw, "stage\t%s\n", stage)
	fmt.Fprintf(tw, "overall\t%.2f\n", r.Overall)
	fmt.Fprintf(tw, "severity\t%s\n", r.Severity)
	fmt.Fprintf(tw, "dominant\t%s\n", r.Dominant)
	for cat, score := range r.Categories.Scores() {
		fmt.Fprintf(tw, "  %s\t%.2f\n", stress.Category(cat), score)
	}
	fmt.Fprintf(tw, "yield reduction\t%.1f%%\n", r.Impact.YieldReductionPct)
	fmt.Fprintf(tw, "quality impact\t%s\n", r.Impact.QualityImpact)
	fmt.Fprintf(tw, "recovery\t%dh\n", r.Impact.RecoveryHours)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Recommendations) > 0 {
		fmt.Fprintf(w, "recommendations:\n  - %s\n", strings.Join(r.Recommendations, "\n  - "))
	}
	return nil
}
