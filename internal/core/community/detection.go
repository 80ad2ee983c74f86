// Package community partitions an undirected weighted graph into communities.
package community

import (
	"slices"

	"github.com/agenthands/graphlens/internal/core/graph"
)

// Detector splits the nodes of g into disjoint communities. Every node of g
// appears in exactly one community, members are node indices in ascending
// order.
type Detector interface {
	Detect(g *graph.Graph) [][]int
}

type link struct {
	to int
	w  float64
}

// network is the weighted adjacency view shared by the modularity based
// detectors. Self-loops are kept apart from adj and count twice in degree.
type network struct {
	adj    [][]link
	loops  []float64
	degree []float64
	total  float64
}

func newNetwork(g *graph.Graph) *network {
	n := g.NodeCount()
	net := &network{
		adj:    make([][]link, n),
		loops:  make([]float64, n),
		degree: make([]float64, n),
	}
	for _, e := range g.Edges() {
		net.add(e.From, e.To, e.Weight)
	}
	return net
}

func (net *network) size() int { return len(net.adj) }

func (net *network) add(u, v int, w float64) {
	net.total += w
	if u == v {
		net.loops[u] += w
		net.degree[u] += 2 * w
		return
	}
	net.adj[u] = append(net.adj[u], link{to: v, w: w})
	net.adj[v] = append(net.adj[v], link{to: u, w: w})
	net.degree[u] += w
	net.degree[v] += w
}

// groups turns a membership vector into communities ordered by their lowest
// member.
func groups(membership []int) [][]int {
	index := make(map[int]int)
	var out [][]int
	for v, c := range membership {
		i, ok := index[c]
		if !ok {
			i = len(out)
			index[c] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], v)
	}
	return out
}

// singletons puts every node in its own community.
func singletons(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = []int{i}
	}
	return out
}

func normalize(communities [][]int) [][]int {
	for _, c := range communities {
		slices.Sort(c)
	}
	slices.SortStableFunc(communities, func(a, b []int) int { return a[0] - b[0] })
	return communities
}
