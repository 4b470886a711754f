package breakdown

import "github.com/MikeSquared-Agency/breakdowns/internal/dialogue"

// SystemFailureDetector flags conversations that ended with a system error.
type SystemFailureDetector struct{}

func NewSystemFailureDetector() *SystemFailureDetector { return &SystemFailureDetector{} }

func (d *SystemFailureDetector) Name() string { return "System failure" }

// DetectBreakdown returns every token of t when it terminated with an error.
// RecursionError is left to the dialogue-of-the-deaf detector.
func (d *SystemFailureDetector) DetectBreakdown(t dialogue.Transcript) Sequence {
	seq, _ := fullSequence(t)
	return seq
}
