package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
)

// WriteRun persists a detector summary: the run row, every breakdown sequence
// and every conversational pattern, in one transaction.
func (s *Store) WriteRun(ctx context.Context, runID uuid.UUID, startedAt time.Time, dialogues int, summary breakdown.Summary) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO breakdown_runs (id, run_id, detector, dialogues, total, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), runID, summary.Detector, dialogues, summary.Total(), startedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, row := range summary.Breakdowns {
		_, err = tx.Exec(ctx, `
			INSERT INTO breakdown_sequences (id, run_id, detector, position, intents, count)
			VALUES ($1, $2, $3, $4, string_to_array($5, ' '), $6)`,
			uuid.New(), runID, summary.Detector, i, row.Sequence, row.Count,
		)
		if err != nil {
			return fmt.Errorf("insert sequence: %w", err)
		}
	}

	for i, p := range summary.Patterns {
		_, err = tx.Exec(ctx, `
			INSERT INTO conversational_patterns (id, run_id, detector, position, width, members, count)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), runID, summary.Detector, i, p.Width, p.Window, p.Count,
		)
		if err != nil {
			return fmt.Errorf("insert pattern: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// SequenceCounts returns the stored breakdown counts of a run and detector,
// keyed by the space-joined sequence.
func (s *Store) SequenceCounts(ctx context.Context, runID uuid.UUID, detector string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT array_to_string(intents, ' '), count
		FROM breakdown_sequences
		WHERE run_id = $1 AND detector = $2
		ORDER BY position`,
		runID, detector,
	)
	if err != nil {
		return nil, fmt.Errorf("query sequences: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var seq string
		var count int
		if err := rows.Scan(&seq, &count); err != nil {
			return nil, fmt.Errorf("scan sequence row: %w", err)
		}
		counts[seq] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sequence rows: %w", err)
	}
	return counts, nil
}
