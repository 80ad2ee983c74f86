package centrality

import (
	"slices"

	"github.com/agenthands/graphlens/internal/core/graph"
	"gonum.org/v1/gonum/floats"
)

const (
	eigenMaxIter = 1000
	eigenTol     = 1e-6
)

// Eigenvector runs power iteration on A+I over the undirected view, starting
// from the uniform vector. It gives up with ErrNotConverged after maxIter
// rounds.
func Eigenvector(g *graph.Graph, w graph.WeightFunc, maxIter int, tol float64) (Scores, error) {
	u := g.Undirected()
	n := u.NodeCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / float64(n)
	}
	for range maxIter {
		last := x
		x = slices.Clone(last)
		for v := range n {
			for _, nbr := range u.Successors(v) {
				x[nbr] += last[v] * w(u.MustEdge(v, nbr))
			}
		}

		norm := floats.Norm(x, 2)
		if norm == 0 {
			norm = 1
		}
		floats.Scale(1/norm, x)
		if floats.Distance(x, last, 1) < float64(n)*tol {
			return x, nil
		}
	}
	return nil, ErrNotConverged
}

// EigenvectorChain falls back from weighted to unweighted iteration and
// finally to degree centrality, which always succeeds.
func EigenvectorChain() []Strategy {
	return []Strategy{
		{Name: "weighted", Compute: func(g *graph.Graph) (Scores, error) {
			if err := checkWeights(g, graph.Weighted); err != nil {
				return nil, err
			}
			return Eigenvector(g, graph.Weighted, eigenMaxIter, eigenTol)
		}},
		{Name: "unweighted", Compute: func(g *graph.Graph) (Scores, error) {
			return Eigenvector(g, graph.Unweighted, eigenMaxIter, eigenTol)
		}},
		{Name: "degree", Compute: func(g *graph.Graph) (Scores, error) {
			return Degree(g), nil
		}},
	}
}
