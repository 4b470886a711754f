package breakdown

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
)

// DetectBreakdownsConcurrent splits transcripts into contiguous chunks, detects
// each chunk on its own worker and merges the chunk tallies in chunk order.
// Detection is side-effect free and merging sums counts, so the result matches
// DetectBreakdowns exactly, key order included.
func DetectBreakdownsConcurrent(ctx context.Context, d Detector, transcripts []dialogue.Transcript, workers int, logger *slog.Logger) (*Tally, error) {
	if workers <= 1 || len(transcripts) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return DetectBreakdowns(d, transcripts, logger), nil
	}

	chunks := chunkTranscripts(transcripts, workers)
	tallies := make([]*Tally, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tallies[i] = DetectBreakdowns(d, chunk, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewTally()
	for _, t := range tallies {
		merged.Merge(t)
	}
	return merged, nil
}

// chunkTranscripts splits ts into at most n contiguous, non-empty chunks.
func chunkTranscripts(ts []dialogue.Transcript, n int) [][]dialogue.Transcript {
	size := (len(ts) + n - 1) / n
	var chunks [][]dialogue.Transcript
	for start := 0; start < len(ts); start += size {
		end := start + size
		if end > len(ts) {
			end = len(ts)
		}
		chunks = append(chunks, ts[start:end])
	}
	return chunks
}
