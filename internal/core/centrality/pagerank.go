package centrality

import (
	"math"

	"github.com/agenthands/graphlens/internal/core/graph"
	"gonum.org/v1/gonum/graph/network"
)

const (
	pagerankAlpha = 0.85
	pagerankTol   = 1e-6
)

// PageRank is gonum's edge-weighted PageRank with uniform teleport. Undirected
// edges are followed both ways, self-loops keep their weight and the mass of
// nodes without outgoing weight is spread uniformly. w must be finite and
// non-negative.
func PageRank(g *graph.Graph, w graph.WeightFunc, alpha, tol float64) (Scores, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	ranks := network.PageRankSparse(g.AsDirected(w, true), alpha, tol)
	out := make(Scores, n)
	for i := range out {
		r := ranks[int64(i)]
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, ErrNotConverged
		}
		out[i] = r
	}
	return out, nil
}

func PageRankChain() []Strategy {
	return []Strategy{
		{Name: "weighted", Compute: func(g *graph.Graph) (Scores, error) {
			if err := checkWeights(g, graph.Weighted); err != nil {
				return nil, err
			}
			return PageRank(g, graph.Weighted, pagerankAlpha, pagerankTol)
		}},
		{Name: "unweighted", Compute: func(g *graph.Graph) (Scores, error) {
			return PageRank(g, graph.Unweighted, pagerankAlpha, pagerankTol)
		}},
		{Name: "uniform", Compute: func(g *graph.Graph) (Scores, error) {
			s := make(Scores, g.NodeCount())
			for i := range s {
				s[i] = 1 / float64(len(s))
			}
			return s, nil
		}},
	}
}
