package centrality

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/agenthands/graphlens/internal/core/graph"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
)

// weightedMaxNodes bounds gonum's all-pairs table, which holds n² distances
// and predecessor lists. maxShortestPaths bounds how many equal-length
// shortest paths its weighted betweenness may walk one by one.
const (
	weightedMaxNodes = 1000
	maxShortestPaths = 1 << 22
)

var ErrTooManyPaths = errors.New("weighted betweenness search too large")

// allShortest runs gonum's all-pairs Dijkstra when the graph is small enough
// for the weighted betweenness that consumes it.
func allShortest(g *graph.Graph, w graph.WeightFunc) (gonum.Weighted, path.AllShortest, error) {
	if n := g.NodeCount(); n > weightedMaxNodes {
		return nil, path.AllShortest{}, fmt.Errorf("%w: %d nodes", ErrTooManyPaths, n)
	}
	view := g.Gonum(w, false)
	p := path.DijkstraAllPaths(view)
	if count := shortestPathCount(g, w, p, maxShortestPaths); count > maxShortestPaths {
		return nil, path.AllShortest{}, fmt.Errorf("%w: more than %d shortest paths", ErrTooManyPaths, maxShortestPaths)
	}
	return view, p, nil
}

// shortestPathCount totals, over every ordered pair, the number of shortest
// paths between them. It stops counting once limit is passed.
func shortestPathCount(g *graph.Graph, w graph.WeightFunc, p path.AllShortest, limit float64) float64 {
	n := g.NodeCount()
	order := make([]int, n)
	sigma := make([]float64, n)
	dist := make([]float64, n)
	total := 0.0
	for s := range n {
		for v := range n {
			order[v] = v
			dist[v] = p.Weight(int64(s), int64(v))
		}
		slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(dist[a], dist[b]) })
		clear(sigma)
		sigma[s] = 1
		for _, t := range order {
			if t == s || math.IsInf(dist[t], 1) {
				continue
			}
			for _, v := range g.Predecessors(t) {
				if v != t && dist[v]+w(g.MustEdge(v, t)) == dist[t] {
					sigma[t] += sigma[v]
				}
			}
			total += sigma[t]
			if total > limit {
				return total
			}
		}
	}
	return total
}

// Betweenness is node betweenness with w as edge length, or over hop counts
// when w is nil. Normalized scores are divided by (n-1)(n-2); unnormalized
// undirected scores are halved since gonum sees each pair from both ends.
func Betweenness(g *graph.Graph, w graph.WeightFunc, normalized bool) (Scores, error) {
	var raw map[int64]float64
	if w == nil {
		raw = network.Betweenness(g.Gonum(graph.Unweighted, false))
	} else {
		view, p, err := allShortest(g, w)
		if err != nil {
			return nil, err
		}
		raw = network.BetweennessWeighted(view, p)
	}

	n := float64(g.NodeCount())
	scale := 1.0
	switch {
	case normalized && n > 2:
		scale = 1 / ((n - 1) * (n - 2))
	case !normalized && !g.Directed():
		scale = 0.5
	}
	out := make(Scores, g.NodeCount())
	for i := range out {
		out[i] = raw[int64(i)] * scale
	}
	return out, nil
}

// EdgeBetweenness is aligned with g.Edges(); w is handled as in Betweenness.
// Normalized scores are divided by n(n-1).
func EdgeBetweenness(g *graph.Graph, w graph.WeightFunc, normalized bool) ([]float64, error) {
	var raw map[[2]int64]float64
	if w == nil {
		raw = network.EdgeBetweenness(g.Gonum(graph.Unweighted, false))
	} else {
		view, p, err := allShortest(g, w)
		if err != nil {
			return nil, err
		}
		raw = network.EdgeBetweennessWeighted(view, p)
	}

	n := float64(g.NodeCount())
	scale := 1.0
	switch {
	case normalized && n > 1:
		scale = 1 / (n * (n - 1))
	case !normalized && !g.Directed():
		scale = 0.5
	}
	out := make([]float64, g.EdgeCount())
	for i, e := range g.Edges() {
		out[i] = raw[edgeKey(g, e)] * scale
	}
	return out, nil
}

// edgeKey matches gonum's edge keys: undirected edges have the lower id first.
func edgeKey(g *graph.Graph, e *graph.Edge) [2]int64 {
	u, v := int64(e.From), int64(e.To)
	if !g.Directed() && v < u {
		u, v = v, u
	}
	return [2]int64{u, v}
}

// EdgeScores is weighted edge betweenness, or the hop-count variant when the
// weights are unusable or the weighted search is refused.
func EdgeScores(g *graph.Graph, normalized bool) []float64 {
	if checkWeights(g, graph.Weighted) == nil {
		if s, err := EdgeBetweenness(g, graph.Weighted, normalized); err == nil {
			return s
		}
	}
	s, _ := EdgeBetweenness(g, nil, normalized)
	return s
}

// BetweennessChain tries edge weights as distances, then hop counts.
func BetweennessChain(normalized bool) []Strategy {
	return []Strategy{
		{Name: "weighted", Compute: func(g *graph.Graph) (Scores, error) {
			if err := checkWeights(g, graph.Weighted); err != nil {
				return nil, err
			}
			return Betweenness(g, graph.Weighted, normalized)
		}},
		{Name: "unweighted", Compute: func(g *graph.Graph) (Scores, error) {
			return Betweenness(g, nil, normalized)
		}},
	}
}
