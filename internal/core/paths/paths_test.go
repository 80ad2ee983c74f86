package paths

import (
	"encoding/json"
	"testing"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func w(src, dst string, weight float64) model.EdgeRecord {
	return model.EdgeRecord{Source: src, Target: dst, Weight: model.Weight(weight)}
}

func records(ids ...string) []model.NodeRecord {
	out := make([]model.NodeRecord, len(ids))
	for i, id := range ids {
		out[i] = model.NodeRecord{ID: id}
	}
	return out
}

func routes() analysis.Input {
	return analysis.Input{
		Nodes: records("A", "B", "C", "D"),
		Edges: []model.EdgeRecord{
			w("A", "B", 1), w("B", "D", 1),
			w("A", "C", 5), w("C", "D", 1),
			w("A", "D", -10),
		},
	}
}

func TestAnalyzer_Comprehensive(t *testing.T) {
	report := New().Analyze(routes())
	require.False(t, report.Failed(), report.Error)

	primary := report.Primary.(Primary)
	assert.Equal(t, Endpoints{Source: "A", Target: "D"}, primary.SourceTarget)
	assert.Equal(t, []string{"A", "B", "D"}, primary.ShortestPath)
	require.NotNil(t, primary.ShortestDistance)
	assert.Equal(t, 2.0, *primary.ShortestDistance)
	assert.Equal(t, 3, primary.PathCount)

	sec := report.Secondary.(Secondary)
	require.NotNil(t, sec.PathsResult)
	assert.Equal(t, []string{"A", "B", "D"}, sec.AllPaths[0].Path)
	assert.Equal(t, 6.0, sec.AllPaths[1].Weight)
	assert.Equal(t, 10.0, sec.AllPaths[2].Weight)
	assert.Equal(t, 1.67, sec.AvgPathLength)
	assert.Equal(t, 6.0, sec.AvgPathWeight)

	require.NotNil(t, sec.EfficiencyResult)
	assert.Nil(t, sec.AvgShortestPathLength)
	require.NotNil(t, sec.GlobalEfficiency)
	assert.Equal(t, 0.4167, *sec.GlobalEfficiency)

	require.NotNil(t, sec.BottleneckResult)
	assert.Equal(t, 0.1667, sec.NodeBetweenness["B"])
	assert.Equal(t, 0.0, sec.NodeBetweenness["C"])
	assert.Equal(t, 0.1667, sec.EdgeCriticality["A → B"])
	assert.Equal(t, []string{"B"}, sec.CriticalNodes)
	assert.Equal(t, 1, sec.BottleneckCount)

	assert.Equal(t, "Shortest path: 2.0 steps. Found 3 paths. Average efficiency: 0.42. 1 critical nodes identified.", report.Summary)
	require.Len(t, report.Visualizations, 3)
	assert.Equal(t, analysis.VizNodeHighlight, report.Visualizations[0].Type)
	assert.Equal(t, "yellow_red", report.Visualizations[2].ColorScale)
	assert.Equal(t, TypeComprehensive, report.Metadata.GraphStats.Extra["analysis_type"])
}

func TestAnalyzer_SingleSection(t *testing.T) {
	in := routes()
	in.Params = analysis.Params{"analysis_type": TypeShortestOnly, "highlight_critical": false}
	report := New().Analyze(in)
	require.False(t, report.Failed(), report.Error)

	sec := report.Secondary.(Secondary)
	assert.NotNil(t, sec.ShortestResult)
	assert.Nil(t, sec.PathsResult)
	assert.Nil(t, sec.EfficiencyResult)
	assert.Nil(t, sec.BottleneckResult)
	assert.Empty(t, report.Visualizations)
	assert.Equal(t, "Shortest path: 2.0 steps.", report.Summary)

	raw, err := json.Marshal(sec)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"shortest_path":["A","B","D"]`)
	assert.NotContains(t, string(raw), "all_paths")
}

func TestAnalyzer_NoPath(t *testing.T) {
	report := New().Analyze(analysis.Input{
		Nodes: records("A", "B", "C"),
		Edges: []model.EdgeRecord{w("B", "A", 1)},
		Params: analysis.Params{"analysis_type": TypeShortestOnly},
	})
	require.False(t, report.Failed(), report.Error)
	primary := report.Primary.(Primary)
	assert.Nil(t, primary.ShortestPath)
	assert.Nil(t, primary.ShortestDistance)
	assert.Equal(t, "Shortest path: No path found.", report.Summary)
}

func TestAnalyzer_SameEndpointsPicksAnotherTarget(t *testing.T) {
	in := routes()
	in.Params = analysis.Params{"source_node": "A", "target_node": "A", "analysis_type": TypeShortestOnly}
	report := New().Analyze(in)
	require.False(t, report.Failed(), report.Error)
	assert.Equal(t, "B", report.Primary.(Primary).SourceTarget.Target)
}

func TestAll_TruncatesBeforeSorting(t *testing.T) {
	nodes := records("S", "a", "b", "c", "d", "e", "f", "T")
	var edges []model.EdgeRecord
	for i, mid := range []string{"a", "b", "c", "d", "e", "f"} {
		edges = append(edges, w("S", mid, float64(10-i)), w(mid, "T", 1))
	}
	report := New().Analyze(analysis.Input{Nodes: nodes, Edges: edges, Params: analysis.Params{
		"analysis_type": TypeAllPaths,
		"path_limit":    1, // clamped to 5
	}})
	require.False(t, report.Failed(), report.Error)

	sec := report.Secondary.(Secondary)
	require.Len(t, sec.AllPaths, 5)
	// the cheapest route through f was found sixth and dropped
	assert.Equal(t, []string{"S", "e", "T"}, sec.AllPaths[0].Path)
	assert.Equal(t, 7.0, sec.AllPaths[0].Weight)
	assert.Equal(t, 5.0, report.Metadata.ParametersUsed["path_limit"])
}

func TestAll_HopLimit(t *testing.T) {
	in := routes()
	in.Params = analysis.Params{"analysis_type": TypeAllPaths, "max_path_length": 1}
	report := New().Analyze(in)
	require.False(t, report.Failed(), report.Error)
	sec := report.Secondary.(Secondary)
	require.Len(t, sec.AllPaths, 1)
	assert.Equal(t, []string{"A", "D"}, sec.AllPaths[0].PathIDs)
}

func TestEfficiency_LargestComponent(t *testing.T) {
	report := New().Analyze(analysis.Input{
		Nodes:  records("A", "B", "C", "D"),
		Edges:  []model.EdgeRecord{w("A", "B", 0), w("B", "A", 3)},
		Params: analysis.Params{"analysis_type": TypeEfficiency},
	})
	require.False(t, report.Failed(), report.Error)
	sec := report.Secondary.(Secondary)
	require.NotNil(t, sec.AvgShortestPathLength)
	// zero weight becomes distance 1
	assert.Equal(t, 2.0, *sec.AvgShortestPathLength)
	assert.Equal(t, 1.0, *sec.GlobalEfficiency)
}

func TestEfficiency_NoEdges(t *testing.T) {
	report := New().Analyze(analysis.Input{
		Nodes:  records("A", "B"),
		Params: analysis.Params{"analysis_type": TypeEfficiency},
	})
	require.False(t, report.Failed(), report.Error)
	sec := report.Secondary.(Secondary)
	assert.Nil(t, sec.AvgShortestPathLength)
	assert.Nil(t, sec.GlobalEfficiency)
	assert.Equal(t, "Average efficiency: N/A.", report.Summary)
}

func TestAnalyzer_Validation(t *testing.T) {
	report := New().Analyze(analysis.Input{Nodes: records("A")})
	assert.Equal(t, "Advanced Path Analysis requires at least 2 nodes", report.Error)
	assert.Equal(t, Primary{ShortestPath: []string{}}, report.Primary)

	report = New().Analyze(analysis.Input{Nodes: records("A", "B"), Edges: []model.EdgeRecord{w("A", "Q", 1)}})
	assert.Equal(t, "Edge target 'Q' not found in nodes", report.Error)
}
