package flow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// nodeLink mirrors networkx node_link_data output. Older networkx releases
// write edges under "links", newer ones under "edges".
type nodeLink struct {
	Directed *bool          `json:"directed"`
	Nodes    []nodeLinkNode `json:"nodes"`
	Links    []nodeLinkEdge `json:"links"`
	Edges    []nodeLinkEdge `json:"edges"`
}

type nodeLinkNode struct {
	ID any `json:"id"`
}

type nodeLinkEdge struct {
	Source any `json:"source"`
	Target any `json:"target"`
}

// adjacency is the YAML form: a node list plus successor lists per node.
type adjacency struct {
	Nodes []string            `yaml:"nodes"`
	Edges map[string][]string `yaml:"edges"`
}

// LoadFile reads a dialogue flow file. ".yaml"/".yml" files use the adjacency
// form, everything else is treated as node-link JSON.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialogue flow: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a dialogue flow from bytes. ext is a format hint; empty means JSON.
func Load(data []byte, ext string) (*Graph, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return loadAdjacency(data)
	default:
		return loadNodeLink(data)
	}
}

func loadNodeLink(data []byte) (*Graph, error) {
	var nl nodeLink
	if err := json.Unmarshal(data, &nl); err != nil {
		return nil, fmt.Errorf("parse dialogue flow json: %w", err)
	}
	if nl.Directed != nil && !*nl.Directed {
		return nil, fmt.Errorf("parse dialogue flow json: graph is not directed")
	}

	g := New()
	for i, n := range nl.Nodes {
		if n.ID == nil {
			return nil, fmt.Errorf("parse dialogue flow json: node %d has no id", i)
		}
		g.AddNode(fmt.Sprint(n.ID))
	}
	edges := nl.Links
	if len(edges) == 0 {
		edges = nl.Edges
	}
	for i, e := range edges {
		if e.Source == nil || e.Target == nil {
			return nil, fmt.Errorf("parse dialogue flow json: edge %d needs source and target", i)
		}
		g.AddEdge(fmt.Sprint(e.Source), fmt.Sprint(e.Target))
	}
	return g, nil
}

func loadAdjacency(data []byte) (*Graph, error) {
	var adj adjacency
	if err := yaml.Unmarshal(data, &adj); err != nil {
		return nil, fmt.Errorf("parse dialogue flow yaml: %w", err)
	}

	g := New()
	for _, n := range adj.Nodes {
		g.AddNode(n)
	}
	for from, tos := range adj.Edges {
		g.AddNode(from)
		for _, to := range tos {
			g.AddEdge(from, to)
		}
	}
	return g, nil
}
