package community

import (
	"testing"

	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, ids []string, pairs [][2]string) *graph.Graph {
	t.Helper()
	nodes := make([]model.NodeRecord, len(ids))
	for i, id := range ids {
		nodes[i] = model.NodeRecord{ID: id}
	}
	edges := make([]model.EdgeRecord, len(pairs))
	for i, p := range pairs {
		edges[i] = model.EdgeRecord{Source: p[0], Target: p[1]}
	}
	g, err := graph.Build(nodes, edges, graph.Options{Weight: graph.Absolute})
	require.NoError(t, err)
	return g
}

var sixNodes = []string{"1", "2", "3", "4", "5", "6"}

func twoTriangles(bridge bool) [][2]string {
	pairs := [][2]string{
		{"1", "2"}, {"2", "3"}, {"3", "1"},
		{"4", "5"}, {"5", "6"}, {"6", "4"},
	}
	if bridge {
		pairs = append(pairs, [2]string{"3", "4"})
	}
	return pairs
}

func TestLPA_DisconnectedComponents(t *testing.T) {
	g := buildGraph(t, sixNodes, twoTriangles(false))

	communities := NewLabelPropagation().Detect(g)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, communities)
}

func TestLPA_BridgeNode(t *testing.T) {
	// 3 and 4 each have two neighbours inside their own triangle and one
	// across the bridge, so the triangles stay apart.
	g := buildGraph(t, sixNodes, twoTriangles(true))

	communities := NewLabelPropagation().Detect(g)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, communities)
}

func TestLPA_LargeClique(t *testing.T) {
	ids := []string{"1", "2", "3", "4", "5"}
	var pairs [][2]string
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			pairs = append(pairs, [2]string{ids[i], ids[j]})
		}
	}
	g := buildGraph(t, ids, pairs)

	communities := NewLabelPropagation().Detect(g)
	require.Len(t, communities, 1)
	assert.Len(t, communities[0], 5)
}

func TestLPA_IsolatedNodeKeepsOwnCommunity(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D"}, [][2]string{{"A", "B"}, {"B", "C"}})

	communities := NewLabelPropagation().Detect(g)
	assert.Contains(t, communities, []int{3})
	total := 0
	for _, c := range communities {
		total += len(c)
	}
	assert.Equal(t, 4, total)
}
