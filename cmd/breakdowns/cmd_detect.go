package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/breakdowns/internal/analysis"
	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
	"github.com/MikeSquared-Agency/breakdowns/internal/config"
)

var detectFlags struct {
	outputFile    string
	components    []string
	patternSize   int
	workers       int
	deafThreshold float64
}

var detectCmd = &cobra.Command{
	Use:   "detect <dialogues> <dialogue_flow>",
	Short: "Detect breakdowns in a dialogues file",
	Long: `Run the breakdown detectors over a DialogueKit dialogues export and
report, per detector, the intent sequences that led to a breakdown and the
conversational patterns among them.

Dialogues may be JSON or YAML. The dialogue flow is a node-link JSON graph
or a YAML adjacency list.

Examples:
  breakdowns detect dialogues.json flow.json
  breakdowns detect dialogues.json flow.json --output-file breakdowns.xlsx
  breakdowns detect dialogues.json flow.json --breakdown-components system_failure -n 4`,
	Args: cobra.ExactArgs(2),
	RunE: runDetect,
}

func init() {
	f := detectCmd.Flags()
	f.StringVar(&detectFlags.outputFile, "output-file", "", "Write the tables to this xlsx workbook instead of the console")
	f.StringSliceVar(&detectFlags.components, "breakdown-components", nil,
		"Detectors to run: system_failure, flow_discontinuation, dialogue_of_the_deaf (default: all)")
	f.IntVarP(&detectFlags.patternSize, "pattern-size", "n", breakdown.DefaultPatternSize, "Widest conversational pattern to mine (default: $BREAKDOWNS_PATTERN_SIZE)")
	f.IntVar(&detectFlags.workers, "workers", 1, "Dialogues are split across this many workers (default: $BREAKDOWNS_WORKERS)")
	f.Float64Var(&detectFlags.deafThreshold, "deaf-threshold", breakdown.DefaultDeafThreshold, "Resemblance threshold for dialogue of the deaf (default: $BREAKDOWNS_DEAF_THRESHOLD)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	// Tables go to stdout, logs to stderr.
	logger := setupLogging(cfg.LogLevel, rootFlags.debug, os.Stderr)

	runCfg := analysis.Config{
		DialoguesPath: args[0],
		FlowPath:      args[1],
		OutputFile:    detectFlags.outputFile,
		Components:    detectFlags.components,
		PatternSize:   cfg.PatternSize,
		Workers:       cfg.Workers,
		DeafThreshold: cfg.DeafThreshold,
	}
	flags := cmd.Flags()
	if flags.Changed("pattern-size") {
		runCfg.PatternSize = detectFlags.patternSize
	}
	if flags.Changed("workers") {
		runCfg.Workers = detectFlags.workers
	}
	if flags.Changed("deaf-threshold") {
		runCfg.DeafThreshold = detectFlags.deafThreshold
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup := connectCollaborators(ctx, cfg, logger)
	defer cleanup()

	result, err := analysis.NewRunner(runCfg, deps, logger).Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	for _, s := range result.Summaries {
		fmt.Fprintf(out, "%s: %d breakdowns\n", s.Detector, result.Counts[s.Detector])
	}
	if runCfg.OutputFile != "" {
		fmt.Fprintf(out, "Report written to %s\n", runCfg.OutputFile)
	}
	return nil
}
