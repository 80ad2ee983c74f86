package graph

import (
	"math"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// SimplePaths walks every simple path from src to dst with at most cutoff
// edges, calling fn with each one in DFS order. The slice passed to fn is
// reused; copy it to keep it. Returning false from fn stops the walk.
// Nothing is emitted when src == dst.
func (g *Graph) SimplePaths(src, dst, cutoff int, fn func(route []int) bool) {
	if src == dst || cutoff < 1 {
		return
	}
	onPath := make([]bool, len(g.nodes))
	route := []int{src}
	onPath[src] = true

	var walk func(u int) bool
	walk = func(u int) bool {
		for _, v := range g.succ[u] {
			if onPath[v] {
				continue
			}
			if v == dst {
				if !fn(append(route, v)) {
					return false
				}
				continue
			}
			if len(route) < cutoff {
				route = append(route, v)
				onPath[v] = true
				ok := walk(v)
				onPath[v] = false
				route = route[:len(route)-1]
				if !ok {
					return false
				}
			}
		}
		return true
	}
	walk(src)
}

// CollectSimplePaths returns copies of every simple path SimplePaths visits.
func (g *Graph) CollectSimplePaths(src, dst, cutoff int) [][]int {
	var out [][]int
	g.SimplePaths(src, dst, cutoff, func(p []int) bool {
		out = append(out, slices.Clone(p))
		return true
	})
	return out
}

// ShortestPathTree is the result of a single-source search. Dist is +Inf for
// unreachable nodes.
type ShortestPathTree struct {
	Source int
	Dist   []float64
	tree   path.Shortest
}

func (t *ShortestPathTree) Reachable(v int) bool {
	return !math.IsInf(t.Dist[v], 1)
}

// PathTo rebuilds the source→v path, or nil when v is unreachable.
func (t *ShortestPathTree) PathTo(v int) []int {
	nodes, _ := t.tree.To(int64(v))
	return Indices(nodes)
}

// Dijkstra computes single-source shortest paths using w as an edge length.
// gonum panics on a negative length, so callers check weights first. Ties
// keep the first predecessor that reached a node.
func (g *Graph) Dijkstra(src int, w WeightFunc) *ShortestPathTree {
	sp := path.DijkstraFrom(simple.Node(src), g.Gonum(w, false))
	t := &ShortestPathTree{Source: src, Dist: make([]float64, len(g.nodes)), tree: sp}
	for i := range t.Dist {
		t.Dist[i] = sp.WeightTo(int64(i))
	}
	return t
}

// ShortestPath is the Dijkstra path from src to dst and its length. ok is
// false when dst is unreachable.
func (g *Graph) ShortestPath(src, dst int, w WeightFunc) (nodes []int, length float64, ok bool) {
	t := g.Dijkstra(src, w)
	if !t.Reachable(dst) {
		return nil, 0, false
	}
	return t.PathTo(dst), t.Dist[dst], true
}

// HopDistances is a breadth-first search from src. Unreached nodes are -1.
func (g *Graph) HopDistances(src int) []int {
	dist := make([]int, len(g.nodes))
	for i := range dist {
		dist[i] = -1
	}
	var bf traverse.BreadthFirst
	bf.Walk(g.Gonum(Unweighted, false), simple.Node(src), func(n gonum.Node, depth int) bool {
		dist[n.ID()] = depth
		return false
	})
	return dist
}

// WeakComponents groups nodes ignoring direction. Components are ordered by
// their lowest node index and members are sorted.
func (g *Graph) WeakComponents() [][]int {
	u := g.Undirected().Gonum(Unweighted, false).(Undirected)
	return ComponentIndices(topo.ConnectedComponents(u))
}

// StrongComponents runs Tarjan's algorithm. On an undirected graph it is the
// same as WeakComponents.
func (g *Graph) StrongComponents() [][]int {
	if !g.directed {
		return g.WeakComponents()
	}
	return ComponentIndices(topo.TarjanSCC(g.AsDirected(Unweighted, false)))
}

// IsWeaklyConnected is false for an empty graph.
func (g *Graph) IsWeaklyConnected() bool {
	return len(g.nodes) > 0 && len(g.WeakComponents()) == 1
}

func (g *Graph) IsStronglyConnected() bool {
	return len(g.nodes) > 0 && len(g.StrongComponents()) == 1
}

// LargestWeakComponent returns the biggest weak component, the earliest one
// on ties.
func (g *Graph) LargestWeakComponent() []int {
	var best []int
	for _, c := range g.WeakComponents() {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}
