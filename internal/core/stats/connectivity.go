package stats

import (
	"github.com/agenthands/graphlens/internal/core/graph"
	gonum "gonum.org/v1/gonum/graph"
)

const (
	// connectivityMaxNodes bounds the max-flow based node and edge
	// connectivity.
	connectivityMaxNodes = 50
	largestListed        = 5
	isolatesListed       = 10
)

type ConnectivitySummary struct {
	// Undirected graphs.
	Connected             *bool    `json:"is_connected,omitempty"`
	ConnectedComponents   *int     `json:"connected_components,omitempty"`
	LargestComponentSize  *int     `json:"largest_component_size,omitempty"`
	LargestComponentNodes []string `json:"largest_component_nodes,omitempty"`
	NodeConnectivity      *int     `json:"node_connectivity,omitempty"`
	EdgeConnectivity      *int     `json:"edge_connectivity,omitempty"`

	// Directed graphs.
	StronglyConnected *bool    `json:"is_strongly_connected,omitempty"`
	WeaklyConnected   *bool    `json:"is_weakly_connected,omitempty"`
	StrongComponents  *int     `json:"strongly_connected_components,omitempty"`
	WeakComponents    *int     `json:"weakly_connected_components,omitempty"`
	LargestSCCSize    *int     `json:"largest_scc_size,omitempty"`
	LargestSCCNodes   []string `json:"largest_scc_nodes,omitempty"`
	LargestWCCSize    *int     `json:"largest_wcc_size,omitempty"`

	IsolatedCount int      `json:"isolated_nodes_count"`
	Isolated      []string `json:"isolated_nodes,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func largest(components [][]int) []int {
	var best []int
	for _, c := range components {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// Isolates are nodes of degree 0. A node whose only edge is a self-loop is
// not isolated.
func Isolates(g *graph.Graph) []int {
	var out []int
	for i := 0; i < g.NodeCount(); i++ {
		if g.Degree(i) == 0 {
			out = append(out, i)
		}
	}
	return out
}

func Connectivity(g *graph.Graph) ConnectivitySummary {
	var s ConnectivitySummary
	first := func(c []int) []string {
		return g.Labels(c[:min(largestListed, len(c))])
	}

	if g.Directed() {
		strong := g.StrongComponents()
		weak := g.WeakComponents()
		s.StronglyConnected = ptr(len(strong) == 1)
		s.WeaklyConnected = ptr(len(weak) == 1)
		s.StrongComponents = ptr(len(strong))
		s.WeakComponents = ptr(len(weak))
		if len(strong) > 0 {
			scc := largest(strong)
			s.LargestSCCSize = ptr(len(scc))
			s.LargestSCCNodes = first(scc)
		}
		if len(weak) > 0 {
			s.LargestWCCSize = ptr(len(largest(weak)))
		}
	} else {
		comps := g.WeakComponents()
		s.Connected = ptr(len(comps) == 1)
		s.ConnectedComponents = ptr(len(comps))
		if len(comps) > 0 {
			c := largest(comps)
			s.LargestComponentSize = ptr(len(c))
			s.LargestComponentNodes = first(c)
		}
		if g.NodeCount() <= connectivityMaxNodes {
			s.NodeConnectivity = ptr(NodeConnectivity(g))
			s.EdgeConnectivity = ptr(EdgeConnectivity(g))
		}
	}

	iso := Isolates(g)
	s.IsolatedCount = len(iso)
	if len(iso) > 0 {
		s.Isolated = g.Labels(iso[:min(isolatesListed, len(iso))])
	}
	return s
}

// NodeConnectivity is the minimum number of nodes whose removal disconnects
// the undirected graph g: the smallest local connectivity over non-adjacent
// pairs, or n-1 for a complete graph. Disconnected graphs score 0.
func NodeConnectivity(g *graph.Graph) int {
	n := g.NodeCount()
	if n < 2 || !g.IsWeaklyConnected() {
		return 0
	}
	s := g.Simple(graph.Unweighted)

	// Node x splits into x_in = 2x and x_out = 2x+1 joined by capacity 1.
	net := newFlowNetwork(2 * n)
	for x := 0; x < n; x++ {
		net.add(2*x, 2*x+1, 1)
	}
	for u := 0; u < n; u++ {
		for _, v := range gonum.NodesOf(s.From(int64(u))) {
			net.add(2*u+1, 2*int(v.ID()), n)
		}
	}

	best := n - 1
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if s.HasEdgeBetween(int64(u), int64(v)) {
				continue
			}
			best = min(best, net.maxFlow(2*u+1, 2*v, best))
		}
	}
	return best
}

// EdgeConnectivity is the minimum number of edges whose removal disconnects
// the undirected graph g. Disconnected graphs score 0.
func EdgeConnectivity(g *graph.Graph) int {
	n := g.NodeCount()
	if n < 2 || !g.IsWeaklyConnected() {
		return 0
	}
	s := g.Simple(graph.Unweighted)
	net := newFlowNetwork(n)
	for u := 0; u < n; u++ {
		for _, v := range gonum.NodesOf(s.From(int64(u))) {
			net.add(u, int(v.ID()), 1)
		}
	}

	best := n
	for v := 1; v < n; v++ {
		best = min(best, net.maxFlow(0, v, best))
	}
	return best
}
