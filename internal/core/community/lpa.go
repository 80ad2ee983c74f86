package community

import (
	"github.com/agenthands/graphlens/internal/core/graph"
)

// LabelPropagation assigns every node the label carrying the most edge weight
// among its neighbours until no label changes. A node keeps its current label
// when that label is among the best, otherwise the largest best label wins,
// so the outcome does not depend on map order.
type LabelPropagation struct {
	MaxIterations int
}

func NewLabelPropagation() *LabelPropagation {
	return &LabelPropagation{MaxIterations: 100}
}

func (d *LabelPropagation) Detect(g *graph.Graph) [][]int {
	net := newNetwork(g)
	n := net.size()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	weight := make(map[int]float64)
	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0
		for u := 0; u < n; u++ {
			if len(net.adj[u]) == 0 {
				continue
			}

			clear(weight)
			best := 0.0
			for _, l := range net.adj[u] {
				weight[labels[l.to]] += l.w
				best = max(best, weight[labels[l.to]])
			}

			if weight[labels[u]] == best {
				continue
			}
			next := -1
			for label, w := range weight {
				if w == best && label > next {
					next = label
				}
			}
			labels[u] = next
			changed++
		}
		if changed == 0 {
			break
		}
	}
	return normalize(groups(labels))
}
