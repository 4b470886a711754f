package breakdown

import (
	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
	"github.com/MikeSquared-Agency/breakdowns/internal/flow"
)

func agent(intent, text string) dialogue.Turn {
	return dialogue.Turn{Role: dialogue.RoleAgent, Intent: intent, Text: text}
}

func user(intent, text string) dialogue.Turn {
	return dialogue.Turn{Role: dialogue.RoleUser, Intent: intent, Text: text}
}

func transcript(id string, turns ...dialogue.Turn) dialogue.Transcript {
	return dialogue.Transcript{ID: id, Turns: turns}
}

func withError(t dialogue.Transcript, errType string) dialogue.Transcript {
	t.Termination = &dialogue.Termination{ErrorType: errType}
	return t
}

func priceGraph() *flow.Graph {
	g := flow.New()
	g.AddEdge("A_greet", "U_ask_price")
	g.AddEdge("U_ask_price", "A_answer")
	return g
}
