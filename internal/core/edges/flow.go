package edges

import (
	"cmp"
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/common"
	"github.com/agenthands/graphlens/internal/core/graph"
)

const (
	flowThreshold = 0.5
	flowTop       = 5
)

type NodeFlow struct {
	In    float64 `json:"in_flow"`
	Out   float64 `json:"out_flow"`
	Net   float64 `json:"net_flow"`
	Total float64 `json:"total_flow"`
}

type FlowAnalysis struct {
	NodeFlows map[string]NodeFlow `json:"node_flows"`
	Sources   []string            `json:"flow_sources"`
	Sinks     []string            `json:"flow_sinks"`
	Hubs      []string            `json:"flow_hubs"`
}

// Flows measures signed weighted in- and out-degree on the directed graph g.
// Sources push out more than flowThreshold net, sinks absorb more than it,
// hubs carry more total flow than the average node.
func Flows(g *graph.Graph) FlowAnalysis {
	type entry struct {
		label string
		flow  NodeFlow
	}
	entries := make([]entry, g.NodeCount())
	totals := make([]float64, g.NodeCount())
	out := FlowAnalysis{NodeFlows: make(map[string]NodeFlow, g.NodeCount())}
	for i := range entries {
		in := g.WeightedInDegree(i, graph.Weighted)
		o := g.WeightedOutDegree(i, graph.Weighted)
		f := NodeFlow{
			In:    analysis.Round(in, 3),
			Out:   analysis.Round(o, 3),
			Net:   analysis.Round(o-in, 3),
			Total: analysis.Round(in+o, 3),
		}
		entries[i] = entry{label: g.Label(i), flow: f}
		totals[i] = f.Total
		out.NodeFlows[g.Label(i)] = f
	}
	mean := common.Mean(totals)

	pick := func(keep func(NodeFlow) bool, order func(a, b NodeFlow) int) []string {
		var sel []entry
		for _, e := range entries {
			if keep(e.flow) {
				sel = append(sel, e)
			}
		}
		slices.SortStableFunc(sel, func(a, b entry) int { return order(a.flow, b.flow) })
		names := make([]string, 0, min(flowTop, len(sel)))
		for _, e := range sel[:min(flowTop, len(sel))] {
			names = append(names, e.label)
		}
		return names
	}
	out.Sources = pick(func(f NodeFlow) bool { return f.Net > flowThreshold },
		func(a, b NodeFlow) int { return cmp.Compare(b.Net, a.Net) })
	out.Sinks = pick(func(f NodeFlow) bool { return f.Net < -flowThreshold },
		func(a, b NodeFlow) int { return cmp.Compare(a.Net, b.Net) })
	out.Hubs = pick(func(f NodeFlow) bool { return f.Total > mean },
		func(a, b NodeFlow) int { return cmp.Compare(b.Total, a.Total) })
	return out
}
