// Package stats computes descriptive statistics of a whole graph: size and
// density, connectivity, clustering, distances and the degree distribution.
package stats

import (
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/common"
	"github.com/agenthands/graphlens/internal/core/graph"
)

type BasicMetrics struct {
	NodeCount      int     `json:"node_count"`
	EdgeCount      int     `json:"edge_count"`
	Directed       bool    `json:"is_directed"`
	Multigraph     bool    `json:"is_multigraph"`
	Density        float64 `json:"density"`
	AverageDegree  float64 `json:"average_degree"`
	MaxDegree      int     `json:"max_degree"`
	MinDegree      int     `json:"min_degree"`
	DegreeVariance float64 `json:"degree_variance"`
	SelfLoops      int     `json:"self_loops"`
}

// Degrees lists the degree of every node in node order.
func Degrees(g *graph.Graph) []int {
	out := make([]int, g.NodeCount())
	for i := range out {
		out[i] = g.Degree(i)
	}
	return out
}

// Density is E / (n(n-1)) for directed graphs and twice that for undirected
// ones, 0 below two nodes.
func Density(g *graph.Graph) float64 {
	n := float64(g.NodeCount())
	if n < 2 {
		return 0
	}
	possible := n * (n - 1)
	if !g.Directed() {
		possible /= 2
	}
	return float64(g.EdgeCount()) / possible
}

func Basic(g *graph.Graph) BasicMetrics {
	degrees := Degrees(g)
	m := BasicMetrics{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Directed:  g.Directed(),
		Density:   analysis.Round(Density(g), 4),
		SelfLoops: g.SelfLoops(),
	}
	if len(degrees) > 0 {
		m.AverageDegree = analysis.Round(common.Mean(degrees), 2)
		m.MaxDegree = slices.Max(degrees)
		m.MinDegree = slices.Min(degrees)
		m.DegreeVariance = analysis.Round(common.Variance(degrees), 4)
	}
	return m
}
