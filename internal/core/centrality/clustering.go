package centrality

import (
	"math"

	"github.com/agenthands/graphlens/internal/core/graph"
)

type nodeSet map[int]struct{}

func setOf(items []int, drop int) nodeSet {
	s := make(nodeSet, len(items))
	for _, v := range items {
		if v != drop {
			s[v] = struct{}{}
		}
	}
	return s
}

// without returns items minus drop, keeping order.
func without(items []int, drop int) []int {
	out := make([]int, 0, len(items))
	for _, v := range items {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}

func (s nodeSet) has(v int) bool {
	_, ok := s[v]
	return ok
}

// Clustering is the local clustering coefficient. Edge weights are scaled by
// the largest weight and triangles count the geometric mean of their three
// scaled weights; graph.Unweighted gives the plain triangle ratio. Directed
// graphs count every orientation of each triangle.
func Clustering(g *graph.Graph, w graph.WeightFunc) Scores {
	maxW := 0.0
	for _, e := range g.Edges() {
		maxW = max(maxW, w(e))
	}
	if maxW == 0 {
		maxW = 1
	}
	wt := func(u, v int) float64 { return w(g.MustEdge(u, v)) / maxW }

	if g.Directed() {
		return directedClustering(g, wt)
	}

	out := make(Scores, g.NodeCount())
	for i := range out {
		nbrs := g.Neighbors(i)
		inbrs := setOf(nbrs, i)
		seen := make(nodeSet)
		tri := 0.0
		for _, j := range nbrs {
			if j == i {
				continue
			}
			seen[j] = struct{}{}
			for _, k := range g.Neighbors(j) {
				if k == j || seen.has(k) || !inbrs.has(k) {
					continue
				}
				tri += math.Cbrt(wt(i, j) * wt(j, k) * wt(k, i))
			}
		}
		d := float64(len(inbrs))
		if tri > 0 {
			out[i] = 2 * tri / (d * (d - 1))
		}
	}
	return out
}

func directedClustering(g *graph.Graph, wt func(u, v int) float64) Scores {
	out := make(Scores, g.NodeCount())
	for i := range out {
		ipreds := without(g.Predecessors(i), i)
		isuccs := without(g.Successors(i), i)
		succSet := setOf(isuccs, -1)

		tri := 0.0
		// j is an in-neighbour (weight j→i) or an out-neighbour (weight i→j)
		accumulate := func(j int, wij float64) {
			jpreds := setOf(g.Predecessors(j), j)
			jsuccs := setOf(g.Successors(j), j)
			for _, k := range ipreds {
				if jpreds.has(k) {
					tri += math.Cbrt(wij * wt(k, i) * wt(k, j))
				}
				if jsuccs.has(k) {
					tri += math.Cbrt(wij * wt(k, i) * wt(j, k))
				}
			}
			for _, k := range isuccs {
				if jpreds.has(k) {
					tri += math.Cbrt(wij * wt(i, k) * wt(k, j))
				}
				if jsuccs.has(k) {
					tri += math.Cbrt(wij * wt(i, k) * wt(j, k))
				}
			}
		}
		for _, j := range ipreds {
			accumulate(j, wt(j, i))
		}
		for _, j := range isuccs {
			accumulate(j, wt(i, j))
		}

		total := float64(len(ipreds) + len(isuccs))
		recip := 0.0
		for _, k := range ipreds {
			if succSet.has(k) {
				recip++
			}
		}
		if tri > 0 {
			out[i] = tri / (2 * (total*(total-1) - 2*recip))
		}
	}
	return out
}

// Triangles counts, per node, the triangles it belongs to in an undirected
// graph.
func Triangles(g *graph.Graph) []int {
	out := make([]int, g.NodeCount())
	for i := range out {
		inbrs := setOf(g.Neighbors(i), i)
		count := 0
		for _, j := range without(g.Neighbors(i), i) {
			for _, k := range g.Neighbors(j) {
				if k != j && inbrs.has(k) {
					count++
				}
			}
		}
		out[i] = count / 2
	}
	return out
}
