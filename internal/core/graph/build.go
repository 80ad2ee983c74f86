package graph

import (
	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural rules every analyzer shares: each node has an
// id and each edge has both endpoints and references known nodes. Duplicate
// node ids are allowed; the later attributes win.
func Validate(nodes []model.NodeRecord, edges []model.EdgeRecord) error {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if err := validate.Struct(n); err != nil {
			return analysis.NewValidationError("nodes", "All nodes must have an 'id' field")
		}
		ids[n.ID] = struct{}{}
	}

	for _, e := range edges {
		if err := validate.Struct(e); err != nil {
			return analysis.NewValidationError("edges", "All edges must have 'source' and 'target' fields")
		}
	}
	for _, e := range edges {
		if _, ok := ids[e.Source]; !ok {
			return analysis.NewValidationError("edges", "Edge source '%s' not found in nodes", e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			return analysis.NewValidationError("edges", "Edge target '%s' not found in nodes", e.Target)
		}
	}
	return nil
}

// Build validates the records and assembles a Graph.
func Build(nodes []model.NodeRecord, edges []model.EdgeRecord, opts Options) (*Graph, error) {
	if err := Validate(nodes, edges); err != nil {
		return nil, err
	}

	g := New(opts)
	for _, n := range nodes {
		g.AddNode(Node{ID: n.ID, Label: n.DisplayLabel(), Type: n.Type, Group: n.Group})
	}
	for _, e := range edges {
		u := g.index[e.Source]
		v := g.index[e.Target]
		g.AddEdge(u, v, e.Type, e.WeightOrDefault())
	}
	return g, nil
}

// HasTypedEdges reports whether any edge carries a type. Several analyzers
// treat a typed graph as directed.
func HasTypedEdges(edges []model.EdgeRecord) bool {
	for _, e := range edges {
		if e.Type != "" {
			return true
		}
	}
	return false
}

// HasRepeatedPairs reports whether the same (source, target) pair appears twice.
func HasRepeatedPairs(edges []model.EdgeRecord) bool {
	seen := make(map[[2]string]struct{}, len(edges))
	for _, e := range edges {
		k := [2]string{e.Source, e.Target}
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}

// Endpoint resolves a node_select parameter to a node index: "auto", empty or
// unknown ids select fallback.
func (g *Graph) Endpoint(id string, fallback int) int {
	if id == analysis.Auto || id == "" {
		return fallback
	}
	if i, ok := g.index[id]; ok {
		return i
	}
	return fallback
}

// FirstLast returns the graph indices of the first and last node records, the
// default source and target of every path analysis.
func (g *Graph) FirstLast(nodes []model.NodeRecord) (first, last int) {
	return g.index[nodes[0].ID], g.index[nodes[len(nodes)-1].ID]
}
