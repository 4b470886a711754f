package breakdown

import (
	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
)

// DefaultDeafThreshold is the minimum resemblance of three agent utterances
// for them to count as a repetition.
const DefaultDeafThreshold = 0.9

// DialogueOfDeafDetector flags agents stuck repeating themselves: three
// consecutive agent turns with the same intent and near-identical text. This
// usually means the policy has a pit the agent cannot climb out of.
type DialogueOfDeafDetector struct {
	threshold float64
}

// NewDialogueOfDeafDetector returns a detector flagging resemblance >= threshold.
// A threshold outside (0, 1] selects DefaultDeafThreshold.
func NewDialogueOfDeafDetector(threshold float64) *DialogueOfDeafDetector {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultDeafThreshold
	}
	return &DialogueOfDeafDetector{threshold: threshold}
}

func (d *DialogueOfDeafDetector) Name() string { return "Dialogue of deaf" }

// Threshold returns the resemblance threshold in use.
func (d *DialogueOfDeafDetector) Threshold() float64 { return d.threshold }

// DetectBreakdown returns the full token run for error-terminated transcripts
// (other than RecursionError). Otherwise it scans agent turns for a repetition
// and returns the tokens of all turns before the repetition began.
func (d *DialogueOfDeafDetector) DetectBreakdown(t dialogue.Transcript) Sequence {
	if seq, ok := fullSequence(t); ok {
		return seq
	}

	// Positions of agent turns in the full transcript.
	var agent []int
	for i, turn := range t.Turns {
		if turn.Role == dialogue.RoleAgent {
			agent = append(agent, i)
		}
	}

	for i := 0; i+2 < len(agent); i++ {
		first, second, third := t.Turns[agent[i]], t.Turns[agent[i+1]], t.Turns[agent[i+2]]
		if first.Intent != second.Intent || second.Intent != third.Intent {
			continue
		}
		if resemblance(first.Text, second.Text, third.Text) >= d.threshold {
			return NewSequence(t.TokensBefore(agent[i])...)
		}
	}
	return Sequence{}
}
