package stats

import (
	"cmp"
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/centrality"
	"github.com/agenthands/graphlens/internal/core/common"
	"github.com/agenthands/graphlens/internal/core/graph"
)

const clusteringListed = 5

type NodeCoefficient struct {
	Node        string  `json:"node"`
	Coefficient float64 `json:"coefficient"`
}

type ClusteringSummary struct {
	Global            float64            `json:"global_clustering_coefficient"`
	Average           float64            `json:"average_clustering_coefficient"`
	HighestNodes      []NodeCoefficient  `json:"highest_clustering_nodes,omitempty"`
	NodeCoefficients  map[string]float64 `json:"node_clustering_coefficients,omitempty"`
	TriangleCount     int                `json:"triangle_count"`
	MaxTrianglesNode  string             `json:"max_triangles_node,omitempty"`
	MaxTrianglesCount int                `json:"max_triangles_count"`
}

// Transitivity is the fraction of connected triples that close into a
// triangle, on the undirected view of g.
func Transitivity(g *graph.Graph) float64 {
	u := g.Undirected()
	triangles := centrality.Triangles(u)
	closed, triples := 0, 0
	for i, t := range triangles {
		d := 0
		for _, v := range u.Neighbors(i) {
			if v != i {
				d++
			}
		}
		closed += 2 * t
		triples += d * (d - 1)
	}
	if closed == 0 {
		return 0
	}
	return float64(closed) / float64(triples)
}

// Clustering works on the undirected, unweighted view of g. Per node
// coefficients are only listed when detailed is set.
func Clustering(g *graph.Graph, detailed bool) ClusteringSummary {
	u := g.Undirected()
	coeffs := centrality.Clustering(u, graph.Unweighted)
	s := ClusteringSummary{
		Global:  analysis.Round(Transitivity(u), 4),
		Average: analysis.Round(common.Mean(coeffs), 4),
	}

	if detailed {
		s.NodeCoefficients = make(map[string]float64, len(coeffs))
		ranked := make([]NodeCoefficient, len(coeffs))
		for i, c := range coeffs {
			c = analysis.Round(c, 4)
			s.NodeCoefficients[u.Label(i)] = c
			ranked[i] = NodeCoefficient{Node: u.Label(i), Coefficient: c}
		}
		slices.SortStableFunc(ranked, func(a, b NodeCoefficient) int { return cmp.Compare(b.Coefficient, a.Coefficient) })
		s.HighestNodes = ranked[:min(clusteringListed, len(ranked))]
	}

	triangles := centrality.Triangles(u)
	total, top := 0, 0
	for i, t := range triangles {
		total += t
		if t > triangles[top] {
			top = i
		}
	}
	s.TriangleCount = total / 3
	if len(triangles) > 0 {
		s.MaxTrianglesNode = u.Label(top)
		s.MaxTrianglesCount = triangles[top]
	}
	return s
}
