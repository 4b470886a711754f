// Package breakdown detects conversational breakdowns in finished transcripts
// and summarizes the intent sequences that lead to them.
package breakdown

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
	"github.com/MikeSquared-Agency/breakdowns/internal/flow"
)

// RecursionErrorType marks conversations that looped until the simulator gave
// up. It is a dialogue-of-the-deaf symptom, not a system failure.
const RecursionErrorType = "RecursionError"

var (
	// ErrUnknownDetector is returned for a detector name outside the known kinds.
	ErrUnknownDetector = errors.New("unknown breakdown detection component")
	// ErrMissingGraph is returned when flow discontinuation is built without a dialogue flow.
	ErrMissingGraph = errors.New("flow discontinuation requires a dialogue flow")
)

// Detector decides whether a single transcript broke down.
type Detector interface {
	// Name is the human-readable breakdown name used to label reports.
	Name() string
	// DetectBreakdown returns the intent tokens that led to the breakdown, or
	// the empty sequence when there is none.
	DetectBreakdown(t dialogue.Transcript) Sequence
}

// Kind selects a detector variant by its configuration name.
type Kind string

const (
	KindSystemFailure       Kind = "system_failure"
	KindFlowDiscontinuation Kind = "flow_discontinuation"
	KindDialogueOfDeaf      Kind = "dialogue_of_the_deaf"
)

// AllKinds lists every detector kind in the default run order.
var AllKinds = []Kind{KindSystemFailure, KindFlowDiscontinuation, KindDialogueOfDeaf}

// ParseKinds validates detector names. An empty list selects all kinds.
func ParseKinds(names []string) ([]Kind, error) {
	if len(names) == 0 {
		return append([]Kind(nil), AllKinds...), nil
	}
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		switch k := Kind(name); k {
		case KindSystemFailure, KindFlowDiscontinuation, KindDialogueOfDeaf:
			kinds = append(kinds, k)
		default:
			return nil, fmt.Errorf("%w %q", ErrUnknownDetector, name)
		}
	}
	return kinds, nil
}

// Options carries what detector construction may need.
type Options struct {
	Graph         *flow.Graph
	DeafThreshold float64 // <= 0 selects DefaultDeafThreshold
}

// New builds the detector for kind.
func New(kind Kind, opts Options) (Detector, error) {
	switch kind {
	case KindSystemFailure:
		return NewSystemFailureDetector(), nil
	case KindFlowDiscontinuation:
		if opts.Graph == nil {
			return nil, ErrMissingGraph
		}
		return NewFlowDiscontinuationDetector(opts.Graph), nil
	case KindDialogueOfDeaf:
		return NewDialogueOfDeafDetector(opts.DeafThreshold), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDetector, kind)
	}
}

// Build creates one detector per kind, in order.
func Build(kinds []Kind, opts Options) ([]Detector, error) {
	detectors := make([]Detector, 0, len(kinds))
	for _, k := range kinds {
		d, err := New(k, opts)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", k, err)
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}

// DetectBreakdowns runs d once per transcript, in order, and counts every
// non-empty sequence it reports.
func DetectBreakdowns(d Detector, transcripts []dialogue.Transcript, logger *slog.Logger) *Tally {
	if logger == nil {
		logger = slog.Default()
	}
	tally := NewTally()
	for _, t := range transcripts {
		seq := d.DetectBreakdown(t)
		logger.Debug("breakdown detected",
			"detector", d.Name(),
			"dialogue", t.ID,
			"sequence", seq.String(),
		)
		tally.Add(seq)
	}
	return tally
}

// fullSequence is the whole role-prefixed token run of t when it terminated
// with an error other than the recursion sentinel.
func fullSequence(t dialogue.Transcript) (Sequence, bool) {
	errType, ok := t.ErrorType()
	if !ok || errType == RecursionErrorType {
		return Sequence{}, false
	}
	return NewSequence(t.Tokens()...), true
}
