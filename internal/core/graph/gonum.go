package graph

import (
	"math"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// view exposes a Graph through gonum's graph interfaces. Node IDs are graph
// indices and adjacency comes back in insertion order, so gonum's searches
// break ties the same way on every run.
type view struct {
	g     *Graph
	w     WeightFunc
	loops bool
	nodes []gonum.Node
	from  [][]gonum.Node
	to    [][]gonum.Node
}

// Directed satisfies gonum's graph.WeightedDirected.
type Directed struct{ *view }

// Undirected satisfies gonum's graph.WeightedUndirected.
type Undirected struct{ *view }

var (
	_ gonum.WeightedDirected   = Directed{}
	_ gonum.WeightedUndirected = Undirected{}
)

func (g *Graph) newView(w WeightFunc, loops bool) *view {
	n := len(g.nodes)
	v := &view{
		g:     g,
		w:     w,
		loops: loops,
		nodes: make([]gonum.Node, n),
		from:  make([][]gonum.Node, n),
		to:    make([][]gonum.Node, n),
	}
	for i := range n {
		v.nodes[i] = simple.Node(i)
		v.from[i] = v.adjacent(i, g.succ[i])
		if g.directed {
			v.to[i] = v.adjacent(i, g.pred[i])
		} else {
			v.to[i] = v.from[i]
		}
	}
	return v
}

func (v *view) adjacent(i int, idx []int) []gonum.Node {
	out := make([]gonum.Node, 0, len(idx))
	for _, j := range idx {
		if j != i || v.loops {
			out = append(out, simple.Node(j))
		}
	}
	return out
}

// Gonum returns g for gonum's algorithms: Directed for a directed graph,
// Undirected otherwise. w weighs the edges. Self-loops are left out unless
// loops is set.
func (g *Graph) Gonum(w WeightFunc, loops bool) gonum.Weighted {
	v := g.newView(w, loops)
	if g.directed {
		return Directed{v}
	}
	return Undirected{v}
}

// AsDirected reads every undirected edge as a pair of arcs. A directed graph
// is returned as it is.
func (g *Graph) AsDirected(w WeightFunc, loops bool) Directed {
	return Directed{g.newView(w, loops)}
}

// Simple copies g into a gonum simple graph, dropping direction and
// self-loops. When both u→v and v→u exist the later edge's weight wins.
func (g *Graph) Simple(w WeightFunc) *simple.WeightedUndirectedGraph {
	out := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range g.nodes {
		out.AddNode(simple.Node(i))
	}
	for _, e := range g.edges {
		if e.From != e.To {
			out.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(e.From), T: simple.Node(e.To), W: w(e)})
		}
	}
	return out
}

// ComponentIndices turns node sets found by gonum into sorted index lists,
// ordered by their lowest member.
func ComponentIndices(sets [][]gonum.Node) [][]int {
	if len(sets) == 0 {
		return nil
	}
	out := make([][]int, 0, len(sets))
	for _, set := range sets {
		c := make([]int, len(set))
		for i, n := range set {
			c[i] = int(n.ID())
		}
		slices.Sort(c)
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

// Indices converts a gonum path to node indices.
func Indices(nodes []gonum.Node) []int {
	if nodes == nil {
		return nil
	}
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = int(n.ID())
	}
	return out
}

func (v *view) Node(id int64) gonum.Node {
	if id < 0 || id >= int64(len(v.nodes)) {
		return nil
	}
	return v.nodes[id]
}

func (v *view) Nodes() gonum.Nodes {
	if len(v.nodes) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(slices.Clone(v.nodes))
}

func (v *view) From(id int64) gonum.Nodes {
	if v.Node(id) == nil || len(v.from[id]) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(v.from[id])
}

func (v *view) arc(uid, vid int64) (*Edge, bool) {
	if v.Node(uid) == nil || v.Node(vid) == nil || (uid == vid && !v.loops) {
		return nil, false
	}
	return v.g.Edge(int(uid), int(vid))
}

func (v *view) HasEdgeBetween(xid, yid int64) bool {
	if _, ok := v.arc(xid, yid); ok {
		return true
	}
	_, ok := v.arc(yid, xid)
	return ok
}

func (v *view) Edge(uid, vid int64) gonum.Edge {
	return v.WeightedEdge(uid, vid)
}

func (v *view) WeightedEdge(uid, vid int64) gonum.WeightedEdge {
	e, ok := v.arc(uid, vid)
	if !ok {
		return nil
	}
	return simple.WeightedEdge{F: simple.Node(uid), T: simple.Node(vid), W: v.w(e)}
}

// Weight is 0 between a node and itself when it has no self-loop, and +Inf
// between unconnected nodes.
func (v *view) Weight(xid, yid int64) (float64, bool) {
	if e, ok := v.arc(xid, yid); ok {
		return v.w(e), true
	}
	if xid == yid {
		return 0, true
	}
	return math.Inf(1), false
}

func (d Directed) HasEdgeFromTo(uid, vid int64) bool {
	_, ok := d.arc(uid, vid)
	return ok
}

func (d Directed) To(id int64) gonum.Nodes {
	if d.Node(id) == nil || len(d.to[id]) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(d.to[id])
}

func (u Undirected) EdgeBetween(xid, yid int64) gonum.Edge {
	return u.WeightedEdge(xid, yid)
}

func (u Undirected) WeightedEdgeBetween(xid, yid int64) gonum.WeightedEdge {
	return u.WeightedEdge(xid, yid)
}
