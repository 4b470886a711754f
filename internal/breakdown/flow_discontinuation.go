package breakdown

import (
	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
	"github.com/MikeSquared-Agency/breakdowns/internal/flow"
)

// FlowDiscontinuationDetector flags the first point where a conversation leaves
// the dialogue flow: a reply the policy does not allow after what came before.
type FlowDiscontinuationDetector struct {
	graph *flow.Graph
}

func NewFlowDiscontinuationDetector(g *flow.Graph) *FlowDiscontinuationDetector {
	return &FlowDiscontinuationDetector{graph: g}
}

func (d *FlowDiscontinuationDetector) Name() string { return "Flow discontinuation" }

// DetectBreakdown grows the token path turn by turn and returns the shortest
// prefix that is no longer a path of the graph.
func (d *FlowDiscontinuationDetector) DetectBreakdown(t dialogue.Transcript) Sequence {
	var path []string
	for _, turn := range t.Turns {
		tokens := turn.Tokens()
		ok := d.graph.Extends(path, tokens)
		path = append(path, tokens...)
		if !ok {
			return NewSequence(path...)
		}
	}
	return Sequence{}
}
