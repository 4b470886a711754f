package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleGraph() *Graph {
	g := New()
	g.AddEdge("A_greet", "U_ask_price")
	g.AddEdge("U_ask_price", "A_answer")
	return g
}

func TestGraph_NodesAndEdges(t *testing.T) {
	g := sampleGraph()
	g.AddNode("A_bye")

	if diff := cmp.Diff([]string{"A_answer", "A_bye", "A_greet", "U_ask_price"}, g.Nodes()); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("expected 2 edges, got %d", g.EdgeCount())
	}
	if !g.HasEdge("A_greet", "U_ask_price") {
		t.Error("expected edge A_greet -> U_ask_price")
	}
	if g.HasEdge("U_ask_price", "A_greet") {
		t.Error("edges must be directed")
	}
	if g.HasEdge("A_missing", "A_greet") {
		t.Error("unexpected edge from unknown node")
	}
	if diff := cmp.Diff([]string{"U_ask_price"}, g.Successors("A_greet")); diff != "" {
		t.Errorf("Successors mismatch (-want +got):\n%s", diff)
	}
}

func TestGraph_IsPath(t *testing.T) {
	g := sampleGraph()
	g.AddNode("A_lonely")

	tests := []struct {
		name string
		path []string
		want bool
	}{
		{"empty", nil, true},
		{"single known node", []string{"A_greet"}, true},
		{"single isolated node", []string{"A_lonely"}, true},
		{"single unknown node", []string{"A_unexpected"}, false},
		{"full valid path", []string{"A_greet", "U_ask_price", "A_answer"}, true},
		{"missing edge", []string{"A_greet", "A_answer"}, false},
		{"unknown tail", []string{"A_greet", "U_ask_price", "A_unexpected"}, false},
		{"reversed", []string{"U_ask_price", "A_greet"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsPath(tt.path); got != tt.want {
				t.Errorf("IsPath(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGraph_ExtendsMatchesIsPath(t *testing.T) {
	g := sampleGraph()
	path := []string{"A_greet", "U_ask_price", "A_answer", "A_greet"}

	for i := 1; i <= len(path); i++ {
		prefix, next := path[:i-1], path[i-1:i]
		want := g.IsPath(path[:i])
		if g.IsPath(prefix) {
			if got := g.Extends(prefix, next); got != want {
				t.Errorf("Extends(%v, %v) = %v, IsPath = %v", prefix, next, got, want)
			}
		}
	}
}
