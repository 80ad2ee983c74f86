// Package centrality computes node and edge centrality measures. Every measure
// is an ordered list of strategies: the first one that succeeds wins, so a
// numerical failure in a weighted variant never reaches the caller.
package centrality

import (
	"errors"
	"fmt"
	"math"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
)

var (
	ErrNotConverged   = errors.New("power iteration failed to converge")
	ErrNegativeWeight = errors.New("negative edge weight")
	ErrEmptyGraph     = errors.New("graph has no nodes")
)

// Scores are per node, indexed like the graph's nodes.
type Scores []float64

// Strategy is one way of computing a measure.
type Strategy struct {
	Name    string
	Compute func(g *graph.Graph) (Scores, error)
}

// Outcome records which strategy produced the scores and why earlier ones
// were skipped.
type Outcome struct {
	Scores   Scores
	Strategy string
	Skipped  []error
}

// Resolve runs strategies in order and returns the first success.
func Resolve(g *graph.Graph, chain []Strategy) (Outcome, error) {
	var out Outcome
	for _, s := range chain {
		scores, err := s.Compute(g)
		if err == nil {
			out.Scores = scores
			out.Strategy = s.Name
			return out, nil
		}
		out.Skipped = append(out.Skipped, fmt.Errorf("%s: %w", s.Name, err))
	}
	return out, errors.Join(out.Skipped...)
}

// checkWeights rejects weight functions that would break shortest-path or
// power-iteration assumptions.
func checkWeights(g *graph.Graph, w graph.WeightFunc) error {
	for _, e := range g.Edges() {
		x := w(e)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("edge %s has weight %v", g.EdgeKey(e), x)
		}
		if x < 0 {
			return fmt.Errorf("%w on %s", ErrNegativeWeight, g.EdgeKey(e))
		}
	}
	return nil
}

// Labeled maps scores to node labels, rounding to places.
func Labeled(g *graph.Graph, s Scores, places int) map[string]float64 {
	out := make(map[string]float64, len(s))
	for i, v := range s {
		out[g.Label(i)] = analysis.Round(v, places)
	}
	return out
}
