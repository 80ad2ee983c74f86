package centrality

import "github.com/agenthands/graphlens/internal/core/graph"

// Closeness is (r-1)/Σd scaled by (r-1)/(n-1), where r is the number of nodes
// that can reach the node (Wasserman and Faust). Directed graphs measure
// incoming distance.
func Closeness(g *graph.Graph, w graph.WeightFunc) Scores {
	n := g.NodeCount()
	out := make(Scores, n)
	if n < 2 {
		return out
	}
	rev := g.Reverse()
	for i := range n {
		tree := rev.Dijkstra(i, w)
		total, reached := 0.0, 0
		for v := range n {
			if tree.Reachable(v) {
				total += tree.Dist[v]
				reached++
			}
		}
		if total > 0 {
			r := float64(reached - 1)
			out[i] = r / total * (r / float64(n-1))
		}
	}
	return out
}

func ClosenessChain() []Strategy {
	return []Strategy{
		{Name: "weighted", Compute: func(g *graph.Graph) (Scores, error) {
			if err := checkWeights(g, graph.Weighted); err != nil {
				return nil, err
			}
			return Closeness(g, graph.Weighted), nil
		}},
		{Name: "unweighted", Compute: func(g *graph.Graph) (Scores, error) {
			return Closeness(g, graph.Unweighted), nil
		}},
	}
}
