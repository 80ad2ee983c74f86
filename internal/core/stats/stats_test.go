package stats

import (
	"testing"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(ids []string, pairs [][2]string) ([]model.NodeRecord, []model.EdgeRecord) {
	nodes := make([]model.NodeRecord, len(ids))
	for i, id := range ids {
		nodes[i] = model.NodeRecord{ID: id}
	}
	edges := make([]model.EdgeRecord, len(pairs))
	for i, p := range pairs {
		edges[i] = model.EdgeRecord{Source: p[0], Target: p[1]}
	}
	return nodes, edges
}

func undirected(t *testing.T, ids []string, pairs ...[2]string) *graph.Graph {
	t.Helper()
	nodes, edges := records(ids, pairs)
	g, err := graph.Build(nodes, edges, graph.Options{Weight: graph.Absolute})
	require.NoError(t, err)
	return g
}

// Triangle A-B-C with a tail C-D and an isolated E.
var (
	tailIDs   = []string{"A", "B", "C", "D", "E"}
	tailPairs = [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}}
)

func TestBasic(t *testing.T) {
	m := Basic(undirected(t, tailIDs, tailPairs...))
	assert.Equal(t, BasicMetrics{
		NodeCount:      5,
		EdgeCount:      4,
		Density:        0.4,
		AverageDegree:  1.6,
		MaxDegree:      3,
		MinDegree:      0,
		DegreeVariance: 1.3,
	}, m)

	loop := Basic(undirected(t, []string{"A"}, [2]string{"A", "A"}))
	assert.Equal(t, 1, loop.SelfLoops)
	assert.Equal(t, 0.0, loop.Density)
	assert.Equal(t, 2, loop.MaxDegree)
}

func TestConnectivity_Undirected(t *testing.T) {
	c := Connectivity(undirected(t, tailIDs, tailPairs...))
	assert.False(t, *c.Connected)
	assert.Equal(t, 2, *c.ConnectedComponents)
	assert.Equal(t, 4, *c.LargestComponentSize)
	assert.Equal(t, []string{"A", "B", "C", "D"}, c.LargestComponentNodes)
	assert.Equal(t, 0, *c.NodeConnectivity)
	assert.Equal(t, 0, *c.EdgeConnectivity)
	assert.Equal(t, 1, c.IsolatedCount)
	assert.Equal(t, []string{"E"}, c.Isolated)
	assert.Nil(t, c.StronglyConnected)
}

func TestNodeAndEdgeConnectivity(t *testing.T) {
	ids := []string{"0", "1", "2", "3", "4", "5"}
	tests := []struct {
		name       string
		ids        []string
		pairs      [][2]string
		node, edge int
	}{
		{"path", ids[:3], [][2]string{{"0", "1"}, {"1", "2"}}, 1, 1},
		{"cycle", ids[:5], [][2]string{{"0", "1"}, {"1", "2"}, {"2", "3"}, {"3", "4"}, {"4", "0"}}, 2, 2},
		{"complete", ids[:4], [][2]string{{"0", "1"}, {"0", "2"}, {"0", "3"}, {"1", "2"}, {"1", "3"}, {"2", "3"}}, 3, 3},
		{"bowtie", ids[:5], [][2]string{{"0", "1"}, {"1", "2"}, {"2", "0"}, {"2", "3"}, {"3", "4"}, {"4", "2"}}, 1, 2},
		{"single", ids[:1], nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := undirected(t, tt.ids, tt.pairs...)
			assert.Equal(t, tt.node, NodeConnectivity(g))
			assert.Equal(t, tt.edge, EdgeConnectivity(g))
		})
	}
}

func TestConnectivity_Directed(t *testing.T) {
	nodes := []model.NodeRecord{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges := []model.EdgeRecord{
		{Source: "A", Target: "B", Type: "+"},
		{Source: "B", Target: "A", Type: "+"},
		{Source: "B", Target: "C", Type: "+"},
	}
	g, err := graph.Build(nodes, edges, graph.Options{Directed: true, Weight: graph.Absolute})
	require.NoError(t, err)

	c := Connectivity(g)
	assert.False(t, *c.StronglyConnected)
	assert.True(t, *c.WeaklyConnected)
	assert.Equal(t, 2, *c.StrongComponents)
	assert.Equal(t, 1, *c.WeakComponents)
	assert.Equal(t, []string{"A", "B"}, c.LargestSCCNodes)
	assert.Equal(t, 3, *c.LargestWCCSize)
	assert.Nil(t, c.NodeConnectivity)
	assert.Nil(t, c.Connected)

	d := Distances(g)
	assert.Equal(t, 2, d.ComponentSize)
	assert.Equal(t, 1, *d.Diameter)
	assert.Equal(t, 1.0, *d.AveragePathLength)
}

func TestClustering(t *testing.T) {
	g := undirected(t, tailIDs, tailPairs...)
	assert.InDelta(t, 0.6, Transitivity(g), 1e-12)

	c := Clustering(g, false)
	assert.Equal(t, 0.6, c.Global)
	assert.Equal(t, 0.4667, c.Average)
	assert.Equal(t, 1, c.TriangleCount)
	assert.Equal(t, "A", c.MaxTrianglesNode)
	assert.Equal(t, 1, c.MaxTrianglesCount)
	assert.Nil(t, c.NodeCoefficients)

	c = Clustering(g, true)
	assert.Equal(t, 0.3333, c.NodeCoefficients["C"])
	assert.Equal(t, []NodeCoefficient{
		{Node: "A", Coefficient: 1},
		{Node: "B", Coefficient: 1},
		{Node: "C", Coefficient: 0.3333},
		{Node: "D", Coefficient: 0},
		{Node: "E", Coefficient: 0},
	}, c.HighestNodes)

	assert.Equal(t, 0.0, Transitivity(undirected(t, []string{"A", "B"}, [2]string{"A", "B"})))
}

func TestDistances(t *testing.T) {
	d := Distances(undirected(t, tailIDs, tailPairs...))
	assert.Equal(t, 4, d.ComponentSize)
	assert.Equal(t, 2, *d.Diameter)
	assert.Equal(t, 1, *d.Radius)
	assert.Equal(t, 1.333, *d.AveragePathLength)
	assert.Equal(t, []string{"C"}, d.CenterNodes)
	assert.Equal(t, []string{"A", "B", "D"}, d.PeripheryNodes)
	assert.Equal(t, 1, d.CenterCount)
	assert.Equal(t, 3, d.PeripheryCount)

	empty := Distances(undirected(t, []string{"A", "B"}))
	assert.Nil(t, empty.Diameter)
	assert.Equal(t, 1, empty.ComponentSize)
}

func TestDegreeDistribution(t *testing.T) {
	s := DegreeDistribution(undirected(t, tailIDs, tailPairs...))
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 2, 3: 1}, s.Distribution)
	assert.Equal(t, 4, s.UniqueDegrees)
	assert.Equal(t, DegreeFrequency{Degree: 2, Count: 2}, s.MostCommonDegree)
	assert.Equal(t, 1.9219, s.Entropy)
	assert.Equal(t, 0, s.MinDegree)
	assert.Equal(t, 3, s.MaxDegree)
	assert.Equal(t, 2.0, s.MedianDegree)
	assert.Equal(t, 1.14, s.StdDev)
}

func tailInput(params analysis.Params) analysis.Input {
	nodes, edges := records(tailIDs, tailPairs)
	return analysis.Input{Nodes: nodes, Edges: edges, Params: params}
}

func TestAnalyzer_Comprehensive(t *testing.T) {
	report := New().Analyze(tailInput(nil))
	require.Empty(t, report.Error)

	p := report.Primary.(Primary)
	assert.Equal(t, 5, p.BasicMetrics.NodeCount)
	require.NotNil(t, p.ConnectivitySummary)
	require.NotNil(t, p.ClusteringSummary)
	assert.Nil(t, p.ClusteringSummary.NodeCoefficients)

	sec := report.Secondary.(Secondary)
	require.NotNil(t, sec.DistanceSummary)
	require.NotNil(t, sec.DegreeStats)

	require.Len(t, report.Visualizations, 2)
	assert.Equal(t, []string{"C"}, report.Visualizations[0].Nodes)
	assert.Equal(t, "Highest Degree Node (3 connections)", report.Visualizations[0].Title)
	assert.Equal(t, "Isolated Nodes (1)", report.Visualizations[1].Title)

	assert.Equal(t, "5 nodes, 4 edges. Density: 0.400. Avg degree: 1.6. 2 components.", report.Summary)
	assert.False(t, report.Metadata.GraphStats.Directed)
	assert.Equal(t, false, report.Metadata.GraphStats.Extra["has_weights"])
}

func TestAnalyzer_Focus(t *testing.T) {
	report := New().Analyze(tailInput(analysis.Params{
		"analysis_focus":    FocusDistance,
		"show_distribution": false,
	}))
	require.Empty(t, report.Error)

	sec := report.Secondary.(Secondary)
	assert.Nil(t, sec.ConnectivitySummary)
	assert.Nil(t, sec.ClusteringSummary)
	assert.Nil(t, sec.DegreeStats)
	require.NotNil(t, sec.DistanceSummary)

	// Only the isolated node highlight survives without the distribution.
	require.Len(t, report.Visualizations, 1)
	assert.Equal(t, "5 nodes, 4 edges. Density: 0.400. Avg degree: 1.6.", report.Summary)

	report = New().Analyze(tailInput(analysis.Params{
		"analysis_focus":      FocusConnectivity,
		"detailed_clustering": true,
	}))
	sec = report.Secondary.(Secondary)
	require.NotNil(t, sec.ClusteringSummary)
	assert.NotEmpty(t, sec.ClusteringSummary.NodeCoefficients)
	assert.Nil(t, sec.DistanceSummary)
}

func TestAnalyzer_RepeatedPairsMakeItDirected(t *testing.T) {
	nodes, edges := records([]string{"A", "B"}, [][2]string{{"A", "B"}, {"A", "B"}})
	report := New().Analyze(analysis.Input{Nodes: nodes, Edges: edges})
	require.Empty(t, report.Error)

	p := report.Primary.(Primary)
	assert.True(t, p.BasicMetrics.Directed)
	assert.Equal(t, 1, p.BasicMetrics.EdgeCount)
	assert.True(t, report.Metadata.GraphStats.Directed)
}

func TestAnalyzer_Failures(t *testing.T) {
	report := New().Analyze(analysis.Input{})
	assert.Equal(t, "Analysis requires at least 1 node", report.Error)

	report = New().Analyze(analysis.Input{Nodes: []model.NodeRecord{{ID: ""}}})
	assert.Equal(t, "All nodes must have an 'id' field", report.Error)
}
