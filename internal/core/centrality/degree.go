package centrality

import "github.com/agenthands/graphlens/internal/core/graph"

// Degree is degree/(n-1); every node scores 1 in a single-node graph.
func Degree(g *graph.Graph) Scores {
	n := g.NodeCount()
	out := make(Scores, n)
	if n == 1 {
		out[0] = 1
		return out
	}
	for i := range out {
		out[i] = float64(g.Degree(i)) / float64(n-1)
	}
	return out
}

func DegreeChain() []Strategy {
	return []Strategy{{Name: "degree", Compute: func(g *graph.Graph) (Scores, error) {
		return Degree(g), nil
	}}}
}
