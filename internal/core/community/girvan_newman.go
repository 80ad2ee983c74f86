package community

import (
	"github.com/agenthands/graphlens/internal/core/graph"
	gonumnetwork "gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/topo"
)

// tieTolerance absorbs the rounding gonum's map-ordered accumulation leaves
// between edges of equal betweenness.
const tieTolerance = 1e-9

// GirvanNewman returns the first level of the Girvan-Newman hierarchy: the
// edge with the highest (unweighted) betweenness is removed, and betweenness
// recomputed, until the graph falls into more components than it started
// with. Ties go to the edge listed first. Self-loops are ignored.
type GirvanNewman struct{}

func NewGirvanNewman() *GirvanNewman { return &GirvanNewman{} }

func (d *GirvanNewman) Detect(g *graph.Graph) [][]int {
	s := g.Simple(graph.Unweighted)

	var remaining [][2]int64
	seen := make(map[[2]int64]bool)
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		key := [2]int64{int64(min(e.From, e.To)), int64(max(e.From, e.To))}
		if !seen[key] {
			seen[key] = true
			remaining = append(remaining, key)
		}
	}

	start := len(topo.ConnectedComponents(s))
	for len(remaining) > 0 {
		scores := gonumnetwork.EdgeBetweenness(s)
		top := 0
		for i, key := range remaining {
			if scores[key] > scores[remaining[top]]+tieTolerance {
				top = i
			}
		}
		s.RemoveEdge(remaining[top][0], remaining[top][1])
		remaining = append(remaining[:top:top], remaining[top+1:]...)

		if components := topo.ConnectedComponents(s); len(components) > start {
			return graph.ComponentIndices(components)
		}
	}
	return graph.ComponentIndices(topo.ConnectedComponents(s))
}
