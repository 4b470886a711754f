// Package flow holds the dialogue policy graph: the intent-token transitions a
// conversation is expected to follow.
package flow

import "sort"

// Graph is a directed graph of intent tokens. It is built once and then only read,
// so a single Graph can be shared by any number of detectors.
type Graph struct {
	adj map[string]map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string]map[string]struct{})}
}

// AddNode adds a node if it is not present yet.
func (g *Graph) AddNode(n string) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = make(map[string]struct{})
	}
}

// AddEdge adds the transition from → to, creating both nodes as needed.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.adj[from][to] = struct{}{}
}

// HasNode reports whether n is a node of the graph.
func (g *Graph) HasNode(n string) bool {
	_, ok := g.adj[n]
	return ok
}

// HasEdge reports whether the direct transition from → to exists.
func (g *Graph) HasEdge(from, to string) bool {
	succ, ok := g.adj[from]
	if !ok {
		return false
	}
	_, ok = succ[to]
	return ok
}

// Nodes returns the nodes in lexical order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Successors returns the direct successors of n in lexical order.
func (g *Graph) Successors(n string) []string {
	succ := make([]string, 0, len(g.adj[n]))
	for s := range g.adj[n] {
		succ = append(succ, s)
	}
	sort.Strings(succ)
	return succ
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, succ := range g.adj {
		total += len(succ)
	}
	return total
}

// IsPath reports whether every token of path is a node and every consecutive
// pair is an edge. The empty path is valid.
func (g *Graph) IsPath(path []string) bool {
	return g.Extends(nil, path)
}

// Extends reports whether appending next to an already valid prefix keeps the
// path valid. Only the new tokens are checked: their node membership and the
// edges linking them to the last token of prefix and to each other.
func (g *Graph) Extends(prefix, next []string) bool {
	prev, hasPrev := "", len(prefix) > 0
	if hasPrev {
		prev = prefix[len(prefix)-1]
	}
	for _, tok := range next {
		if !g.HasNode(tok) {
			return false
		}
		if hasPrev && !g.HasEdge(prev, tok) {
			return false
		}
		prev, hasPrev = tok, true
	}
	return true
}
