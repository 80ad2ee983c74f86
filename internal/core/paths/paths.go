// Package paths analyzes routes between two nodes: the shortest one, every
// simple one up to a hop limit, how efficiently the graph connects overall and
// which nodes and edges those routes funnel through.
package paths

import (
	"cmp"
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/centrality"
	"github.com/agenthands/graphlens/internal/core/graph"
)

type ShortestResult struct {
	ShortestPath       []string `json:"shortest_path"`
	ShortestPathIDs    []string `json:"shortest_path_ids,omitempty"`
	ShortestDistance   *float64 `json:"shortest_distance"`
	ShortestPathLength int      `json:"shortest_path_length"`
}

type PathDetail struct {
	Path    []string `json:"path"`
	PathIDs []string `json:"path_ids"`
	Weight  float64  `json:"weight"`
	Length  int      `json:"length"`
}

type PathsResult struct {
	AllPaths      []PathDetail `json:"all_paths"`
	TotalPaths    int          `json:"total_paths"`
	AvgPathLength float64      `json:"avg_path_length"`
	AvgPathWeight float64      `json:"avg_path_weight"`
}

type EfficiencyResult struct {
	AvgShortestPathLength *float64 `json:"avg_shortest_path_length"`
	GlobalEfficiency      *float64 `json:"global_efficiency"`
	AvgPathEfficiency     *float64 `json:"avg_path_efficiency"`
}

type BottleneckResult struct {
	NodeBetweenness map[string]float64 `json:"node_betweenness"`
	EdgeCriticality map[string]float64 `json:"edge_criticality"`
	CriticalNodes   []string           `json:"critical_nodes"`
	BottleneckCount int                `json:"bottleneck_count"`
}

func ids(g *graph.Graph, path []int) []string {
	out := make([]string, len(path))
	for i, n := range path {
		out[i] = g.Node(n).ID
	}
	return out
}

// Shortest runs Dijkstra on distance weights. An unreachable target is a
// result with a nil path, not an error.
func Shortest(g *graph.Graph, src, dst int) *ShortestResult {
	path, length, ok := g.ShortestPath(src, dst, graph.Weighted)
	if !ok {
		return &ShortestResult{}
	}
	d := analysis.Round(length, 2)
	return &ShortestResult{
		ShortestPath:       g.Labels(path),
		ShortestPathIDs:    ids(g, path),
		ShortestDistance:   &d,
		ShortestPathLength: len(path) - 1,
	}
}

// All enumerates simple paths of at most maxLen hops, keeps the first limit
// found, then orders them by total distance.
func All(g *graph.Graph, src, dst, maxLen, limit int) *PathsResult {
	found := g.CollectSimplePaths(src, dst, maxLen)
	if len(found) > limit {
		found = found[:limit]
	}

	details := make([]PathDetail, 0, len(found))
	for _, p := range found {
		total := 0.0
		for i := 0; i+1 < len(p); i++ {
			total += g.MustEdge(p[i], p[i+1]).Weight
		}
		details = append(details, PathDetail{
			Path:    g.Labels(p),
			PathIDs: ids(g, p),
			Weight:  analysis.Round(total, 2),
			Length:  len(p) - 1,
		})
	}
	slices.SortStableFunc(details, func(a, b PathDetail) int { return cmp.Compare(a.Weight, b.Weight) })

	res := &PathsResult{AllPaths: details, TotalPaths: len(details)}
	if len(details) > 0 {
		var hops, weight float64
		for _, d := range details {
			hops += float64(d.Length)
			weight += d.Weight
		}
		res.AvgPathLength = analysis.Round(hops/float64(len(details)), 2)
		res.AvgPathWeight = analysis.Round(weight/float64(len(details)), 2)
	}
	return res
}

// Efficiency measures the weakly connected graph, or its largest weak
// component. The average shortest path needs every ordered pair reachable;
// global efficiency counts unreachable pairs as 0. Both are nil below two
// nodes.
func Efficiency(g *graph.Graph) *EfficiencyResult {
	h := g
	if !g.IsWeaklyConnected() {
		h = g.Subgraph(g.LargestWeakComponent())
	}
	n := h.NodeCount()
	res := &EfficiencyResult{}
	if n < 2 {
		return res
	}

	pairs := float64(n * (n - 1))
	total, inverse := 0.0, 0.0
	allReachable := true
	for s := range n {
		tree := h.Dijkstra(s, graph.Weighted)
		hops := h.HopDistances(s)
		for t := range n {
			if t == s {
				continue
			}
			if !tree.Reachable(t) {
				allReachable = false
				continue
			}
			total += tree.Dist[t]
			inverse += 1 / float64(hops[t])
		}
	}
	if allReachable {
		avg := analysis.Round(total/pairs, 2)
		res.AvgShortestPathLength = &avg
	}
	eff := analysis.Round(inverse/pairs, 4)
	res.GlobalEfficiency = &eff
	res.AvgPathEfficiency = &eff
	return res
}

// Bottlenecks reports weighted node and edge betweenness, the critical nodes
// and how many nodes carry more than a tenth of all shortest paths.
func Bottlenecks(g *graph.Graph) (*BottleneckResult, error) {
	outcome, err := centrality.Resolve(g, centrality.BetweennessChain(true))
	if err != nil {
		return nil, err
	}
	nodeScores := centrality.Labeled(g, outcome.Scores, 4)

	edgeScores := centrality.EdgeScores(g, true)
	edgeMap := make(map[string]float64, len(edgeScores))
	for i, e := range g.Edges() {
		edgeMap[g.EdgeKey(e)] = analysis.Round(edgeScores[i], 4)
	}

	count := 0
	for _, s := range nodeScores {
		if s > 0.1 {
			count++
		}
	}
	return &BottleneckResult{
		NodeBetweenness: nodeScores,
		EdgeCriticality: edgeMap,
		CriticalNodes:   centrality.CriticalNodes(g.NodeLabels(), nodeScores),
		BottleneckCount: count,
	}, nil
}
