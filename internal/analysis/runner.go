// Package analysis runs the breakdown detectors over a batch of dialogues and
// hands the results to reporting, persistence and notification.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
	"github.com/MikeSquared-Agency/breakdowns/internal/flow"
	"github.com/MikeSquared-Agency/breakdowns/internal/hermes"
	"github.com/MikeSquared-Agency/breakdowns/internal/report"
)

// Config holds the detect command configuration.
type Config struct {
	DialoguesPath string
	FlowPath      string
	OutputFile    string   // optional: xlsx workbook, console when empty
	Components    []string // detector kinds, all when empty
	PatternSize   int
	Workers       int
	DeafThreshold float64
}

// RunStore persists one detector summary of a run.
type RunStore interface {
	WriteRun(ctx context.Context, runID uuid.UUID, startedAt time.Time, dialogues int, summary breakdown.Summary) error
}

// EventPublisher announces finished runs.
type EventPublisher interface {
	PublishRunCompleted(evt hermes.RunCompleted) error
}

// DigestPoster posts a human-readable run digest.
type DigestPoster interface {
	PostRunDigest(ctx context.Context, runID string, dialogues int, summaries []breakdown.Summary) (string, error)
}

// Deps are the optional collaborators of a run. Nil fields are skipped, except
// Sink, which defaults to a workbook or the console.
type Deps struct {
	Sink   report.Sink
	Store  RunStore
	Events EventPublisher
	Digest DigestPoster
}

// Result is what a run produced.
type Result struct {
	RunID     uuid.UUID
	Summaries []breakdown.Summary
	Counts    map[string]int // detector name → total breakdowns
}

// Runner orchestrates one detection run.
type Runner struct {
	cfg    Config
	deps   Deps
	logger *slog.Logger
}

// NewRunner creates a detection runner.
func NewRunner(cfg Config, deps Deps, logger *slog.Logger) *Runner {
	if cfg.PatternSize == 0 {
		cfg.PatternSize = breakdown.DefaultPatternSize
	}
	if deps.Sink == nil {
		if cfg.OutputFile != "" {
			deps.Sink = report.NewWorkbook(cfg.OutputFile)
		} else {
			deps.Sink = report.NewConsole(os.Stdout)
		}
	}
	return &Runner{cfg: cfg, deps: deps, logger: logger}
}

// Run executes the detection run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	// Reject unknown components before touching the filesystem.
	kinds, err := breakdown.ParseKinds(r.cfg.Components)
	if err != nil {
		return nil, fmt.Errorf("parse components: %w", err)
	}

	startedAt := time.Now().UTC()
	runID := uuid.New()

	transcripts, err := dialogue.LoadFile(r.cfg.DialoguesPath)
	if err != nil {
		return nil, fmt.Errorf("load dialogues: %w", err)
	}

	var graph *flow.Graph
	if r.cfg.FlowPath != "" {
		graph, err = flow.LoadFile(r.cfg.FlowPath)
		if err != nil {
			return nil, fmt.Errorf("load dialogue flow: %w", err)
		}
	}

	r.logger.Info("inputs loaded",
		"run_id", runID,
		"dialogues", len(transcripts),
		"components", len(kinds),
	)

	detectors, err := breakdown.Build(kinds, breakdown.Options{Graph: graph, DeafThreshold: r.cfg.DeafThreshold})
	if err != nil {
		return nil, err
	}

	summaries, err := Analyze(ctx, detectors, transcripts, r.cfg.PatternSize, r.cfg.Workers, r.logger)
	if err != nil {
		return nil, err
	}

	for _, s := range summaries {
		if err := r.deps.Sink.Write(s); err != nil {
			return nil, fmt.Errorf("write report for %s: %w", s.Detector, err)
		}
	}

	result := &Result{RunID: runID, Summaries: summaries, Counts: make(map[string]int, len(summaries))}
	for _, s := range summaries {
		result.Counts[s.Detector] = s.Total()
	}

	r.persist(ctx, runID, startedAt, len(transcripts), summaries)
	r.publish(runID, startedAt, len(transcripts), summaries)
	r.postDigest(ctx, runID, len(transcripts), summaries)

	r.logger.Info("run complete", "run_id", runID, "duration", time.Since(startedAt).String())
	return result, nil
}

func (r *Runner) persist(ctx context.Context, runID uuid.UUID, startedAt time.Time, dialogues int, summaries []breakdown.Summary) {
	if r.deps.Store == nil {
		return
	}
	for _, s := range summaries {
		if err := r.deps.Store.WriteRun(ctx, runID, startedAt, dialogues, s); err != nil {
			r.logger.Warn("failed to persist run", "run_id", runID, "detector", s.Detector, "error", err)
		}
	}
}

func (r *Runner) publish(runID uuid.UUID, startedAt time.Time, dialogues int, summaries []breakdown.Summary) {
	if r.deps.Events == nil {
		return
	}
	evt := hermes.RunCompleted{
		RunID:      runID.String(),
		Dialogues:  dialogues,
		Detectors:  make([]hermes.DetectorTotal, 0, len(summaries)),
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	for _, s := range summaries {
		evt.Detectors = append(evt.Detectors, hermes.DetectorTotal{
			Detector:   s.Detector,
			Breakdowns: s.Total(),
			Sequences:  len(s.Breakdowns),
			Patterns:   len(s.Patterns),
		})
	}
	if err := r.deps.Events.PublishRunCompleted(evt); err != nil {
		r.logger.Warn("failed to publish run completed", "run_id", runID, "error", err)
	}
}

func (r *Runner) postDigest(ctx context.Context, runID uuid.UUID, dialogues int, summaries []breakdown.Summary) {
	if r.deps.Digest == nil {
		return
	}
	if _, err := r.deps.Digest.PostRunDigest(ctx, runID.String(), dialogues, summaries); err != nil {
		r.logger.Warn("failed to post run digest", "run_id", runID, "error", err)
	}
}
