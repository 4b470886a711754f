// Package report renders breakdown summaries for people: bordered console
// tables or one spreadsheet sheet per detector.
package report

import (
	"errors"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
)

// Sink receives the summary of one detector run.
type Sink interface {
	Write(s breakdown.Summary) error
}

// Multi writes every summary to all of its sinks and joins their errors.
type Multi []Sink

func (m Multi) Write(s breakdown.Summary) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Write(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

const (
	headerSequence = "Sequence of intents"
	headerPattern  = "Conversational pattern"
	headerWidth    = "Width"
	headerCount    = "Count"
)

// patternLabel renders a window, e.g. "(A_greet U_bye | A_error)".
func patternLabel(window []string) string {
	return "(" + strings.Join(window, " | ") + ")"
}

func breakdownRows(s breakdown.Summary) [][]string {
	rows := make([][]string, 0, len(s.Breakdowns))
	for _, r := range s.Breakdowns {
		rows = append(rows, []string{r.Sequence, strconv.Itoa(r.Count)})
	}
	return rows
}

func patternRows(s breakdown.Summary) [][]string {
	rows := make([][]string, 0, len(s.Patterns))
	for _, p := range s.Patterns {
		rows = append(rows, []string{patternLabel(p.Window), strconv.Itoa(p.Width), strconv.Itoa(p.Count)})
	}
	return rows
}
