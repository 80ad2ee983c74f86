package stats

import (
	"fmt"
	"strings"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
)

const ID = "basic-statistics"

const (
	FocusComprehensive = "comprehensive"
	FocusConnectivity  = "connectivity"
	FocusClustering    = "clustering"
	FocusDistance      = "distance"
)

const (
	colorHighestDegree = "#d73027"
	colorIsolated      = "#636363"
)

type Primary struct {
	BasicMetrics        BasicMetrics         `json:"basic_metrics"`
	ConnectivitySummary *ConnectivitySummary `json:"connectivity_summary"`
	ClusteringSummary   *ClusteringSummary   `json:"clustering_summary"`
}

type Secondary struct {
	BasicMetrics        BasicMetrics         `json:"basic_metrics"`
	ConnectivitySummary *ConnectivitySummary `json:"connectivity_summary,omitempty"`
	ClusteringSummary   *ClusteringSummary   `json:"clustering_summary,omitempty"`
	DistanceSummary     *DistanceSummary     `json:"distance_summary,omitempty"`
	DegreeStats         *DegreeStats         `json:"degree_stats,omitempty"`
}

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Info() analysis.Info {
	return analysis.Info{
		ID:               ID,
		Name:             "Basic Graph Statistics",
		Description:      "Density, connectivity, clustering, distance and degree distribution of the whole graph",
		Version:          "1.0.0",
		Category:         "statistics",
		Tags:             []string{"statistics", "density", "connectivity", "clustering", "distance"},
		SupportsDirected: true,
		SupportsWeighted: true,
		MinNodes:         1,
		Parameters: []analysis.ParamSpec{
			{ID: "analysis_focus", Name: "Analysis Focus", Kind: analysis.KindSelect, Default: FocusComprehensive,
				Options: []analysis.Option{
					{Value: FocusComprehensive, Label: "Comprehensive"},
					{Value: FocusConnectivity, Label: "Connectivity"},
					{Value: FocusClustering, Label: "Clustering"},
					{Value: FocusDistance, Label: "Distance"},
				}},
			{ID: "show_distribution", Name: "Degree Distribution", Kind: analysis.KindBoolean, Default: true},
			{ID: "detailed_clustering", Name: "Per-Node Clustering", Kind: analysis.KindBoolean, Default: false},
			{ID: "connectivity_analysis", Name: "Connectivity Analysis", Kind: analysis.KindBoolean, Default: true},
			{ID: "distance_analysis", Name: "Distance Analysis", Kind: analysis.KindBoolean, Default: true},
		},
	}
}

func (a *Analyzer) Analyze(in analysis.Input) *analysis.Report {
	return analysis.Execute(a.Info(), in, func() any { return Primary{} }, a.run)
}

func (a *Analyzer) run(in analysis.Input, params analysis.Params) (*analysis.Output, error) {
	directed := graph.HasTypedEdges(in.Edges) || graph.HasRepeatedPairs(in.Edges)
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{Directed: directed, Weight: graph.Absolute})
	if err != nil {
		return nil, err
	}

	focus := params.String("analysis_focus")
	wants := func(section string) bool { return focus == FocusComprehensive || focus == section }

	sec := Secondary{BasicMetrics: Basic(g)}
	if wants(FocusConnectivity) && params.Bool("connectivity_analysis") {
		c := Connectivity(g)
		sec.ConnectivitySummary = &c
	}
	if detailed := params.Bool("detailed_clustering"); wants(FocusClustering) || detailed {
		c := Clustering(g, detailed)
		sec.ClusteringSummary = &c
	}
	if wants(FocusDistance) && params.Bool("distance_analysis") {
		d := Distances(g)
		sec.DistanceSummary = &d
	}
	if params.Bool("show_distribution") {
		d := DegreeDistribution(g)
		sec.DegreeStats = &d
	}

	var viz []analysis.Visualization
	if sec.DegreeStats != nil {
		degrees := Degrees(g)
		hi, lo := 0, 0
		for i, d := range degrees {
			if d > degrees[hi] {
				hi = i
			}
			if d < degrees[lo] {
				lo = i
			}
		}
		if degrees[hi] > degrees[lo] {
			viz = append(viz, analysis.Visualization{
				Type:  analysis.VizNodeHighlight,
				Nodes: []string{g.Label(hi)},
				Color: colorHighestDegree,
				Title: fmt.Sprintf("Highest Degree Node (%d connections)", degrees[hi]),
			})
		}
	}
	if iso := Isolates(g); len(iso) > 0 {
		viz = append(viz, analysis.Visualization{
			Type:  analysis.VizNodeHighlight,
			Nodes: g.Labels(iso),
			Color: colorIsolated,
			Title: fmt.Sprintf("Isolated Nodes (%d)", len(iso)),
		})
	}

	return &analysis.Output{
		Primary: Primary{
			BasicMetrics:        sec.BasicMetrics,
			ConnectivitySummary: sec.ConnectivitySummary,
			ClusteringSummary:   sec.ClusteringSummary,
		},
		Secondary:      sec,
		Visualizations: viz,
		Summary:        summarize(sec),
		Stats: analysis.GraphStats{
			Directed:  directed,
			Connected: g.IsWeaklyConnected(),
			Extra: map[string]any{
				"analysis_focus": focus,
				"has_weights":    hasWeights(in),
			},
		},
	}, nil
}

func hasWeights(in analysis.Input) bool {
	for _, e := range in.Edges {
		if e.WeightOrDefault() != 1 {
			return true
		}
	}
	return false
}

func summarize(s Secondary) string {
	m := s.BasicMetrics
	parts := []string{
		fmt.Sprintf("%d nodes, %d edges", m.NodeCount, m.EdgeCount),
		fmt.Sprintf("Density: %.3f", m.Density),
		fmt.Sprintf("Avg degree: %.1f", m.AverageDegree),
	}
	if c := s.ConnectivitySummary; c != nil && c.Connected != nil && !*c.Connected {
		parts = append(parts, fmt.Sprintf("%d components", *c.ConnectedComponents))
	}
	return strings.Join(parts, ". ") + "."
}
