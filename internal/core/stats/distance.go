package stats

import (
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
)

// distanceMaxNodes bounds the all-pairs search.
const distanceMaxNodes = 100

type DistanceSummary struct {
	Diameter          *int     `json:"diameter,omitempty"`
	Radius            *int     `json:"radius,omitempty"`
	AveragePathLength *float64 `json:"average_path_length,omitempty"`
	CenterNodes       []string `json:"center_nodes,omitempty"`
	PeripheryNodes    []string `json:"periphery_nodes,omitempty"`
	CenterCount       int      `json:"center_count"`
	PeripheryCount    int      `json:"periphery_count"`
	ComponentSize     int      `json:"component_size"`
}

// Distances measures hop distances inside the largest strongly connected
// component (directed) or connected component (undirected), where every
// ordered pair is reachable. Components of one node or of more than
// distanceMaxNodes nodes produce an empty summary.
func Distances(g *graph.Graph) DistanceSummary {
	component := largest(g.StrongComponents())
	s := DistanceSummary{ComponentSize: len(component)}
	if len(component) <= 1 || len(component) > distanceMaxNodes {
		return s
	}
	sub := g.Subgraph(component)
	n := sub.NodeCount()

	ecc := make([]int, n)
	sum := 0
	for v := 0; v < n; v++ {
		for _, d := range sub.HopDistances(v) {
			ecc[v] = max(ecc[v], d)
			sum += d
		}
	}
	diameter, radius := slices.Max(ecc), slices.Min(ecc)
	avg := analysis.Round(float64(sum)/float64(n*(n-1)), 3)
	s.Diameter = &diameter
	s.Radius = &radius
	s.AveragePathLength = &avg

	var center, periphery []int
	for v, e := range ecc {
		if e == radius {
			center = append(center, v)
		}
		if e == diameter {
			periphery = append(periphery, v)
		}
	}
	s.CenterNodes = sub.Labels(center)
	s.PeripheryNodes = sub.Labels(periphery)
	s.CenterCount = len(center)
	s.PeripheryCount = len(periphery)
	return s
}
