package edges

import (
	"encoding/json"
	"testing"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A →(+3) B →(-2) C →(+0.6) D, plus an untyped A → C of default weight.
func sampleInput(params analysis.Params) analysis.Input {
	return analysis.Input{
		Nodes: []model.NodeRecord{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
		Edges: []model.EdgeRecord{
			{Source: "A", Target: "B", Type: "+", Weight: model.Weight(3)},
			{Source: "B", Target: "C", Type: "-", Weight: model.Weight(-2)},
			{Source: "A", Target: "C"},
			{Source: "C", Target: "D", Type: "+", Weight: model.Weight(0.6)},
		},
		Params: params,
	}
}

func sampleRecords(t *testing.T) (*graph.Graph, []Record) {
	t.Helper()
	in := sampleInput(nil)
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{Directed: true, Weight: graph.Raw})
	require.NoError(t, err)
	return g, Records(g, in.Edges)
}

func TestRecords(t *testing.T) {
	_, records := sampleRecords(t)
	require.Len(t, records, 4)
	assert.Equal(t, Record{Key: "A → C", Source: 0, Target: 2, Type: "+", Weight: 1, Abs: 1}, records[2])
	assert.Equal(t, 2.0, records[1].Abs)
}

func TestWeights(t *testing.T) {
	_, records := sampleRecords(t)

	w := Weights(records, 2)
	assert.Equal(t, 4, w.Stats.Count)
	assert.Equal(t, 0.65, w.Stats.Mean)
	assert.Equal(t, 0.8, w.Stats.Median)
	assert.Equal(t, -2.0, w.Stats.Min)
	assert.Equal(t, 3.0, w.Stats.Max)
	assert.Equal(t, 5.0, w.Stats.Range)
	require.NotNil(t, w.Stats.StdDev)
	assert.Equal(t, 2.055, *w.Stats.StdDev)

	assert.Equal(t, []Category{
		{Category: 1, Min: 0.6, Max: 1, Count: 2, Avg: 0.8},
		{Category: 2, Min: 2, Max: 3, Count: 2, Avg: 2.5},
	}, w.Categories)
	assert.Equal(t, []float64{3, 1, 0.6}, w.Distribution.Positive)
	assert.Equal(t, []float64{-2}, w.Distribution.Negative)
	assert.Empty(t, w.Distribution.Zero)

	// More categories than edges.
	assert.Empty(t, Weights(records, 5).Categories)
}

func TestWeights_RemainderGoesToLastCategory(t *testing.T) {
	var records []Record
	for _, w := range []float64{1, 2, 3, 4, 5} {
		records = append(records, Record{Weight: w, Abs: w})
	}
	cats := Weights(records, 2).Categories
	require.Len(t, cats, 2)
	assert.Equal(t, 2, cats[0].Count)
	assert.Equal(t, 3, cats[1].Count)
	assert.Equal(t, 4.0, cats[1].Avg)

	single := Weights(records[:1], 2)
	assert.Nil(t, single.Stats.StdDev)
}

func TestFlows(t *testing.T) {
	g, _ := sampleRecords(t)

	f := Flows(g)
	assert.Equal(t, NodeFlow{In: 0, Out: 4, Net: 4, Total: 4}, f.NodeFlows["A"])
	assert.Equal(t, NodeFlow{In: 3, Out: -2, Net: -5, Total: 1}, f.NodeFlows["B"])
	assert.Equal(t, []string{"A", "C"}, f.Sources)
	assert.Equal(t, []string{"B", "D"}, f.Sinks)
	assert.Equal(t, []string{"A"}, f.Hubs)
}

func TestRelationships(t *testing.T) {
	_, records := sampleRecords(t)

	r := Relationships(records)
	s := r.Summary
	assert.Equal(t, 4, s.TotalEdges)
	assert.Equal(t, 3, s.PositiveCount)
	assert.Equal(t, 1, s.NegativeCount)
	assert.Equal(t, 0, s.NeutralCount)
	assert.Equal(t, 75.0, s.PositivePercentage)
	assert.Equal(t, 25.0, s.NegativePercentage)
	assert.Equal(t, 1.533, *s.AvgPositiveStrength)
	assert.Equal(t, 3.0, *s.MaxPositiveStrength)
	assert.Equal(t, 2.0, *s.AvgNegativeStrength)
	assert.Equal(t, []WeightedEdge{{Edge: "B → C", Weight: -2}}, r.Details.Negative)

	neutral := Relationships([]Record{{Key: "X → Y", Type: "~", Weight: 1, Abs: 1}})
	assert.Equal(t, 1, neutral.Summary.NeutralCount)
	assert.Nil(t, neutral.Summary.AvgPositiveStrength)
}

func TestStrength(t *testing.T) {
	_, records := sampleRecords(t)

	s := Strength(records)
	assert.Equal(t, []WeightedEdge{
		{Edge: "A → B", Weight: 3},
		{Edge: "B → C", Weight: -2},
		{Edge: "A → C", Weight: 1},
		{Edge: "C → D", Weight: 0.6},
	}, s.Strongest)
	assert.Equal(t, s.Strongest, s.Weakest)
	assert.Equal(t, 2.0, s.Importance["B → C"])
}

func TestHints(t *testing.T) {
	_, records := sampleRecords(t)

	h := hints(records, visualOptions{coloring: ColorByStrength, scheme: "strength", sizing: true, extremes: true})
	assert.Equal(t, map[string]string{
		"A → B": "#b2182b",
		"B → C": "#fddbc7",
		"A → C": "#4393c3",
		"C → D": "#2166ac",
	}, h.Colors)
	assert.Equal(t, map[string]float64{"A → B": 8, "B → C": 5.1, "A → C": 2.2, "C → D": 1}, h.Widths)
	assert.Equal(t, "", h.Labels["A → B"])
	assert.Equal(t, []string{"A → B", "B → C", "A → C"}, h.Extremes.Strongest)
	assert.Equal(t, []string{"C → D"}, h.Extremes.Weakest)

	h = hints(records, visualOptions{coloring: ColorByRelationship, showLabels: true})
	assert.Equal(t, colorNegative, h.Colors["B → C"])
	assert.Equal(t, colorPositive, h.Colors["A → C"])
	assert.Equal(t, 2.0, h.Widths["A → B"])
	assert.Equal(t, "0.6", h.Labels["C → D"])
	assert.Equal(t, "-2", h.Labels["B → C"])
	assert.Empty(t, h.Extremes.Strongest)
}

func TestHints_EqualWeightsSitInTheMiddle(t *testing.T) {
	records := []Record{{Key: "a", Abs: 1, Weight: 1}, {Key: "b", Abs: 1, Weight: 1}}
	h := hints(records, visualOptions{coloring: ColorByStrength, scheme: "heat", sizing: true})
	assert.Equal(t, "#abd9e9", h.Colors["a"])
	assert.Equal(t, 4.5, h.Widths["b"])
}

func TestAnalyzer_Comprehensive(t *testing.T) {
	report := New().Analyze(sampleInput(nil))
	require.Empty(t, report.Error)

	p := report.Primary.(Primary)
	assert.Equal(t, 4, p.EdgeCount)
	require.NotNil(t, p.WeightStatistics)
	assert.Equal(t, 0.65, p.WeightStatistics.Mean)
	require.NotNil(t, p.RelationshipSummary)
	assert.Len(t, p.StrongestConnections, 4)

	require.Len(t, report.Visualizations, 3)
	assert.Equal(t, "Edge Analysis (Weight Strength)", report.Visualizations[0].Title)
	assert.Equal(t, analysis.VizEdgeWidth, report.Visualizations[1].Type)
	assert.Equal(t, []string{"A → B", "B → C", "A → C"}, report.Visualizations[2].Edges)

	assert.Equal(t, "Analyzed 4 edges. Average weight: 0.65. 3 positive relationships. 1 negative relationships.", report.Summary)
	assert.Equal(t, true, report.Metadata.GraphStats.Extra["has_weights"])
	assert.Equal(t, true, report.Metadata.GraphStats.Extra["has_types"])

	raw, err := json.Marshal(report.Secondary)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"weight_stats", "weight_categories", "flow_analysis", "relationship_summary", "strength_analysis", "edge_colors", "extreme_edges"} {
		assert.Contains(t, doc, key)
	}
}

func TestAnalyzer_Focus(t *testing.T) {
	report := New().Analyze(sampleInput(analysis.Params{
		"analysis_focus":     FocusFlow,
		"edge_sizing":        false,
		"highlight_extremes": false,
		"edge_coloring":      ColorByFlow,
	}))
	require.Empty(t, report.Error)

	p := report.Primary.(Primary)
	assert.Nil(t, p.WeightStatistics)
	assert.Nil(t, p.RelationshipSummary)
	assert.Empty(t, p.StrongestConnections)

	sec := report.Secondary.(Secondary)
	assert.Nil(t, sec.WeightAnalysis)
	require.NotNil(t, sec.Flow)
	assert.Equal(t, "#fddbc7", sec.Colors["A → B"])

	require.Len(t, report.Visualizations, 1)
	assert.Equal(t, "Edge Analysis (Flow Direction)", report.Visualizations[0].Title)
	assert.Equal(t, "Edge analysis completed.", report.Summary)
}

func TestAnalyzer_Failures(t *testing.T) {
	report := New().Analyze(analysis.Input{Nodes: []model.NodeRecord{{ID: "A"}}})
	assert.Equal(t, "Edge Weight Analysis requires at least 1 edge", report.Error)

	report = New().Analyze(analysis.Input{
		Nodes: []model.NodeRecord{{ID: "A"}},
		Edges: []model.EdgeRecord{{Source: "Q", Target: "A"}},
	})
	assert.Equal(t, "Edge source 'Q' not found in nodes", report.Error)
	assert.Empty(t, report.Primary.(Primary).StrongestConnections)
}
