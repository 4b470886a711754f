package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
)

// Analyze runs every detector over transcripts, in order, and summarizes each
// tally with patterns of width up to patternSize.
func Analyze(ctx context.Context, detectors []breakdown.Detector, transcripts []dialogue.Transcript, patternSize, workers int, logger *slog.Logger) ([]breakdown.Summary, error) {
	summaries := make([]breakdown.Summary, 0, len(detectors))
	for _, d := range detectors {
		tally, err := breakdown.DetectBreakdownsConcurrent(ctx, d, transcripts, workers, logger)
		if err != nil {
			return nil, fmt.Errorf("detect %s: %w", d.Name(), err)
		}
		logger.Info("breakdowns detected",
			"detector", d.Name(),
			"breakdowns", tally.Total(),
			"sequences", tally.Len(),
		)
		summaries = append(summaries, breakdown.Summarize(d.Name(), tally, patternSize))
	}
	return summaries, nil
}
