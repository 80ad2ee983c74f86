package community

import (
	"math"

	"github.com/agenthands/graphlens/internal/core/graph"
	gonum "gonum.org/v1/gonum/graph"
	gcommunity "gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// Modularity scores a partition of g with the given resolution:
//
//	Q = Σ_c [ L_c/m − γ·(d_c/2m)² ]
//
// where L_c is the weight inside c, d_c the summed degree of c and m the total
// edge weight. It reports false when the graph carries no weight.
func Modularity(g *graph.Graph, communities [][]int, resolution float64) (float64, bool) {
	return newNetwork(g).modularity(communities, resolution)
}

func (net *network) modularity(communities [][]int, resolution float64) (float64, bool) {
	if net.total == 0 {
		return math.NaN(), false
	}
	parts := make([][]gonum.Node, len(communities))
	for c, nodes := range communities {
		parts[c] = make([]gonum.Node, len(nodes))
		for i, v := range nodes {
			parts[c][i] = simple.Node(v)
		}
	}
	return gcommunity.Q(newWeighted(net), parts, resolution), true
}

// weighted is a network as gonum's graph.WeightedUndirected. Parallel links
// are summed. A self-loop weighs twice its link weight from its node to
// itself, so gonum's degrees agree with network.degree.
type weighted struct {
	net   *network
	nodes []gonum.Node
	from  [][]gonum.Node
	pair  []map[int64]float64
}

var _ gonum.WeightedUndirected = (*weighted)(nil)

func newWeighted(net *network) *weighted {
	n := net.size()
	g := &weighted{
		net:   net,
		nodes: make([]gonum.Node, n),
		from:  make([][]gonum.Node, n),
		pair:  make([]map[int64]float64, n),
	}
	for u := range n {
		g.nodes[u] = simple.Node(u)
		g.pair[u] = make(map[int64]float64, len(net.adj[u]))
		for _, l := range net.adj[u] {
			if _, seen := g.pair[u][int64(l.to)]; !seen {
				g.from[u] = append(g.from[u], simple.Node(l.to))
			}
			g.pair[u][int64(l.to)] += l.w
		}
	}
	return g
}

func (g *weighted) Node(id int64) gonum.Node {
	if id < 0 || id >= int64(len(g.nodes)) {
		return nil
	}
	return g.nodes[id]
}

func (g *weighted) Nodes() gonum.Nodes {
	if len(g.nodes) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(g.nodes)
}

func (g *weighted) From(id int64) gonum.Nodes {
	if g.Node(id) == nil || len(g.from[id]) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(g.from[id])
}

func (g *weighted) HasEdgeBetween(xid, yid int64) bool {
	if g.Node(xid) == nil {
		return false
	}
	_, ok := g.pair[xid][yid]
	return ok
}

func (g *weighted) Edge(uid, vid int64) gonum.Edge { return g.WeightedEdge(uid, vid) }

func (g *weighted) EdgeBetween(xid, yid int64) gonum.Edge { return g.WeightedEdge(xid, yid) }

func (g *weighted) WeightedEdgeBetween(xid, yid int64) gonum.WeightedEdge {
	return g.WeightedEdge(xid, yid)
}

func (g *weighted) WeightedEdge(uid, vid int64) gonum.WeightedEdge {
	if !g.HasEdgeBetween(uid, vid) {
		return nil
	}
	return simple.WeightedEdge{F: simple.Node(uid), T: simple.Node(vid), W: g.pair[uid][vid]}
}

func (g *weighted) Weight(xid, yid int64) (float64, bool) {
	if g.Node(xid) == nil || g.Node(yid) == nil {
		return 0, false
	}
	if xid == yid {
		return 2 * g.net.loops[xid], true
	}
	w, ok := g.pair[xid][yid]
	return w, ok
}
