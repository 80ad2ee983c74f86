package ranking

import (
	"fmt"
	"testing"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/centrality"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranked(scores ...float64) []centrality.Ranked {
	out := make([]centrality.Ranked, len(scores))
	for i, s := range scores {
		out[i] = centrality.Ranked{Node: fmt.Sprintf("n%d", i), Score: s}
	}
	return out
}

func TestSelectCount(t *testing.T) {
	assert.Equal(t, 3, SelectCount(7, 50))
	assert.Equal(t, 1, SelectCount(1, 10))
	assert.Equal(t, 7, SelectCount(7, 100))
}

func TestSplit(t *testing.T) {
	tiers := Split(ranked(10, 9, 8, 7, 6, 5, 4, 3, 2, 1), 4)
	require.Len(t, tiers, 4)
	counts := []int{}
	for _, tier := range tiers {
		counts = append(counts, tier.Count)
	}
	// last tier absorbs the remainder
	assert.Equal(t, []int{2, 2, 2, 4}, counts)
	assert.Equal(t, 9.5, tiers[0].AvgScore)
	assert.Equal(t, 1.0, tiers[3].MinScore)
	assert.Equal(t, 4.0, tiers[3].MaxScore)
	assert.Equal(t, "n0", tiers[0].Nodes[0].Node)
}

func TestSplit_FewerNodesThanTiers(t *testing.T) {
	tiers := Split(ranked(3, 2, 1), 4)
	require.Len(t, tiers, 3)
	assert.Equal(t, 3, tiers[2].Tier)
	assert.Empty(t, Split(nil, 4))
}

func TestDescribe(t *testing.T) {
	s := Describe(ranked(3, 1), 2)
	assert.Equal(t, Stats{
		TotalNodes:   2,
		MeanScore:    2,
		MaxScore:     3,
		MinScore:     1,
		ScoreRange:   2,
		StdDeviation: 1,
		TiersCreated: 2,
	}, s)
}

func star() analysis.Input {
	nodes := []model.NodeRecord{{ID: "H"}, {ID: "L1"}, {ID: "L2"}, {ID: "L3"}, {ID: "L4"}}
	var edges []model.EdgeRecord
	for _, leaf := range nodes[1:] {
		edges = append(edges, model.EdgeRecord{Source: "H", Target: leaf.ID})
	}
	return analysis.Input{Nodes: nodes, Edges: edges}
}

func TestAnalyzer_DegreeTiers(t *testing.T) {
	in := star()
	in.Params = analysis.Params{"ranking_method": MethodDegree}
	report := New().Analyze(in)
	require.False(t, report.Failed(), report.Error)

	primary := report.Primary.(Primary)
	assert.Equal(t, centrality.Ranked{Node: "H", Score: 1}, primary.ImportanceRanking[0])
	assert.Len(t, primary.ImportanceRanking, 5)
	assert.Equal(t, []TierSummary{
		{Tier: 1, Count: 1, AvgScore: 1, Color: "#d73027"},
		{Tier: 2, Count: 1, AvgScore: 0.25, Color: "#f46d43"},
	}, primary.TierSummary)

	sec := report.Secondary.(Secondary)
	assert.Equal(t, 1, sec.TierAssignments["H"])
	assert.Equal(t, 2, sec.TierAssignments["L1"])
	assert.Equal(t, 0, sec.TierAssignments["L4"])
	assert.Equal(t, 30.0, sec.NodeSizes["H"])
	assert.Equal(t, 26.0, sec.NodeSizes["L1"])
	assert.Equal(t, 12.0, sec.NodeSizes["L4"])
	assert.Equal(t, "#cccccc", sec.NodeColors["L4"])
	assert.Equal(t, "H\n(1.000)", sec.NodeLabels["H"])
	assert.Equal(t, 2, sec.Statistics.TiersCreated)

	assert.Equal(t, "Most important: H (1.000). Ranked 5 nodes. Created 2 importance tiers. Method: Degree.", report.Summary)
	require.Len(t, report.Visualizations, 3)
	assert.Equal(t, "Importance Ranking (Degree)", report.Visualizations[0].Title)
	assert.Equal(t, []string{"H"}, report.Visualizations[2].Nodes)
	assert.Equal(t, 2, report.Metadata.GraphStats.Extra["nodes_highlighted"])
}

func TestAnalyzer_NoTierSizingOrLabels(t *testing.T) {
	in := star()
	in.Params = analysis.Params{"ranking_method": MethodDegree, "tier_sizing": false, "show_labels": false, "top_percent": 100}
	report := New().Analyze(in)
	require.False(t, report.Failed(), report.Error)

	sec := report.Secondary.(Secondary)
	for _, size := range sec.NodeSizes {
		assert.Equal(t, 15.0, size)
	}
	assert.Equal(t, "H", sec.NodeLabels["H"])
	assert.Len(t, report.Visualizations, 2)
}

func TestAnalyzer_CompositeAndClustering(t *testing.T) {
	report := New().Analyze(star())
	require.False(t, report.Failed(), report.Error)
	assert.Equal(t, "H", report.Primary.(Primary).ImportanceRanking[0].Node)

	in := analysis.Input{
		Nodes: []model.NodeRecord{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
		Edges: []model.EdgeRecord{
			{Source: "A", Target: "B"}, {Source: "B", Target: "C"},
			{Source: "C", Target: "A"}, {Source: "A", Target: "D"},
		},
		Params: analysis.Params{"ranking_method": MethodClustering, "color_scheme": "rainbow"},
	}
	report = New().Analyze(in)
	require.False(t, report.Failed(), report.Error)
	scores := report.Secondary.(Secondary).ImportanceScores
	assert.Equal(t, 1.0, scores["B"])
	assert.Equal(t, 0.0, scores["D"])
	assert.Equal(t, "B", report.Primary.(Primary).ImportanceRanking[0].Node)
}

func TestAnalyzer_Failure(t *testing.T) {
	report := New().Analyze(analysis.Input{Nodes: []model.NodeRecord{{Label: "no id"}}})
	assert.Equal(t, "All nodes must have an 'id' field", report.Error)
	assert.Equal(t, Primary{ImportanceRanking: []centrality.Ranked{}, TierSummary: []TierSummary{}}, report.Primary)
}
