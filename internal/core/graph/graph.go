// Package graph builds the in-memory graph every analyzer works on and holds
// the traversal primitives they share.
package graph

import (
	"fmt"
	"math"
	"slices"
)

// WeightMode decides how an edge's weight attribute is derived from the record.
type WeightMode int

const (
	// Raw keeps the weight exactly as supplied.
	Raw WeightMode = iota
	// Signed is -|w| for "-" edges and +|w| otherwise.
	Signed
	// Absolute is |w|.
	Absolute
	// Distance is |w|, with 1 substituted for a zero weight so that no edge
	// is a free traversal.
	Distance
)

type Options struct {
	Directed bool
	Weight   WeightMode
}

type Node struct {
	ID    string
	Label string
	Type  string
	Group string
}

// Edge connects node indices From and To. For undirected graphs the
// orientation is the one of the first record seen for the pair.
type Edge struct {
	From      int
	To        int
	Type      string
	RawWeight float64
	Weight    float64
}

// WeightFunc reads the length or strength of an edge for an algorithm.
type WeightFunc func(e *Edge) float64

// Weighted reads Edge.Weight.
func Weighted(e *Edge) float64 { return e.Weight }

// Unweighted treats every edge as 1.
func Unweighted(*Edge) float64 { return 1 }

// Graph is a simple (no multi-edges) directed or undirected weighted graph.
// Nodes and adjacency keep insertion order so every traversal is deterministic.
type Graph struct {
	directed bool
	mode     WeightMode
	nodes    []Node
	index    map[string]int
	edges    []*Edge
	lookup   map[[2]int]*Edge
	succ     [][]int
	pred     [][]int
}

func New(opts Options) *Graph {
	return &Graph{
		directed: opts.Directed,
		mode:     opts.Weight,
		index:    make(map[string]int),
		lookup:   make(map[[2]int]*Edge),
	}
}

// AddNode inserts a node or, when the id is already present, overwrites its
// attributes in place.
func (g *Graph) AddNode(n Node) int {
	if n.Label == "" {
		n.Label = n.ID
	}
	if i, ok := g.index[n.ID]; ok {
		g.nodes[i] = n
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.index[n.ID] = i
	g.succ = append(g.succ, nil)
	g.pred = append(g.pred, nil)
	return i
}

// AddEdge inserts u→v. A second edge for the same pair replaces the type and
// weight of the first one but keeps its position.
func (g *Graph) AddEdge(u, v int, edgeType string, raw float64) *Edge {
	w := DeriveWeight(g.mode, edgeType, raw)
	key := g.key(u, v)
	if e, ok := g.lookup[key]; ok {
		e.Type = edgeType
		e.RawWeight = raw
		e.Weight = w
		return e
	}

	e := &Edge{From: u, To: v, Type: edgeType, RawWeight: raw, Weight: w}
	g.edges = append(g.edges, e)
	g.lookup[key] = e

	g.succ[u] = append(g.succ[u], v)
	if g.directed {
		g.pred[v] = append(g.pred[v], u)
	} else if u != v {
		g.succ[v] = append(g.succ[v], u)
	}
	return e
}

// DeriveWeight applies a WeightMode to a record's type and weight.
func DeriveWeight(mode WeightMode, edgeType string, raw float64) float64 {
	switch mode {
	case Signed:
		if edgeType == "-" {
			return -math.Abs(raw)
		}
		return math.Abs(raw)
	case Absolute:
		return math.Abs(raw)
	case Distance:
		if raw == 0 {
			return 1
		}
		return math.Abs(raw)
	}
	return raw
}

func (g *Graph) key(u, v int) [2]int {
	if !g.directed && u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

func (g *Graph) Directed() bool { return g.directed }
func (g *Graph) WeightMode() WeightMode { return g.mode }
func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }
func (g *Graph) Node(i int) Node { return g.nodes[i] }
func (g *Graph) Label(i int) string { return g.nodes[i].Label }

// Edges returns the edges in insertion order. Callers must not modify them.
func (g *Graph) Edges() []*Edge { return g.edges }

func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

func (g *Graph) Labels(idx []int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = g.nodes[n].Label
	}
	return out
}

// NodeLabels lists every label in node order.
func (g *Graph) NodeLabels() []string {
	out := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.Label
	}
	return out
}

// Successors are the out-neighbours of i, or all neighbours when undirected.
func (g *Graph) Successors(i int) []int { return g.succ[i] }

// Predecessors are the in-neighbours of i, or all neighbours when undirected.
func (g *Graph) Predecessors(i int) []int {
	if !g.directed {
		return g.succ[i]
	}
	return g.pred[i]
}

// Neighbors ignores direction: successors first, then predecessors not
// already listed.
func (g *Graph) Neighbors(i int) []int {
	if !g.directed {
		return g.succ[i]
	}
	out := slices.Clone(g.succ[i])
	for _, p := range g.pred[i] {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func (g *Graph) Edge(u, v int) (*Edge, bool) {
	e, ok := g.lookup[g.key(u, v)]
	return e, ok
}

// MustEdge is for callers that just walked adjacency and know the edge exists.
func (g *Graph) MustEdge(u, v int) *Edge {
	e, ok := g.Edge(u, v)
	if !ok {
		panic(fmt.Sprintf("graph: no edge %d→%d", u, v))
	}
	return e
}

// EdgeKey is the human readable "source → target" form used in reports.
func (g *Graph) EdgeKey(e *Edge) string {
	return g.nodes[e.From].Label + " → " + g.nodes[e.To].Label
}

// Degree counts in- plus out-edges; an undirected self-loop counts twice.
func (g *Graph) Degree(i int) int {
	if g.directed {
		return len(g.succ[i]) + len(g.pred[i])
	}
	d := len(g.succ[i])
	if _, loop := g.lookup[[2]int{i, i}]; loop {
		d++
	}
	return d
}

func (g *Graph) InDegree(i int) int { return len(g.Predecessors(i)) }
func (g *Graph) OutDegree(i int) int { return len(g.succ[i]) }

// WeightedDegree sums w over the edges touching i; undirected self-loops count twice.
func (g *Graph) WeightedDegree(i int, w WeightFunc) float64 {
	total := g.WeightedOutDegree(i, w)
	if g.directed {
		return total + g.WeightedInDegree(i, w)
	}
	if e, loop := g.lookup[[2]int{i, i}]; loop {
		total += w(e)
	}
	return total
}

func (g *Graph) WeightedOutDegree(i int, w WeightFunc) float64 {
	total := 0.0
	for _, v := range g.succ[i] {
		total += w(g.MustEdge(i, v))
	}
	return total
}

func (g *Graph) WeightedInDegree(i int, w WeightFunc) float64 {
	total := 0.0
	for _, u := range g.Predecessors(i) {
		total += w(g.MustEdge(u, i))
	}
	return total
}

func (g *Graph) SelfLoops() int {
	count := 0
	for _, e := range g.edges {
		if e.From == e.To {
			count++
		}
	}
	return count
}

// Undirected returns a symmetric copy. When both u→v and v→u exist the later
// edge's attributes win.
func (g *Graph) Undirected() *Graph {
	if !g.directed {
		return g
	}
	out := New(Options{Directed: false, Weight: g.mode})
	for _, n := range g.nodes {
		out.AddNode(n)
	}
	for _, e := range g.edges {
		out.AddEdge(e.From, e.To, e.Type, e.RawWeight)
	}
	return out
}

// Reverse flips every edge of a directed graph.
func (g *Graph) Reverse() *Graph {
	if !g.directed {
		return g
	}
	out := New(Options{Directed: true, Weight: g.mode})
	for _, n := range g.nodes {
		out.AddNode(n)
	}
	for _, e := range g.edges {
		out.AddEdge(e.To, e.From, e.Type, e.RawWeight)
	}
	return out
}

// Subgraph keeps the given nodes (in their original order) and the edges
// between them. Node indices are renumbered.
func (g *Graph) Subgraph(keep []int) *Graph {
	sorted := slices.Clone(keep)
	slices.Sort(sorted)

	out := New(Options{Directed: g.directed, Weight: g.mode})
	remap := make(map[int]int, len(sorted))
	for _, i := range sorted {
		remap[i] = out.AddNode(g.nodes[i])
	}
	for _, e := range g.edges {
		u, okU := remap[e.From]
		v, okV := remap[e.To]
		if okU && okV {
			out.AddEdge(u, v, e.Type, e.RawWeight)
		}
	}
	return out
}
