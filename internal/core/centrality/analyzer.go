package centrality

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
)

const ID = "node-centrality"

const (
	MeasureDegree      = "degree"
	MeasureBetweenness = "betweenness"
	MeasureCloseness   = "closeness"
	MeasureEigenvector = "eigenvector"
	MeasurePageRank    = "pagerank"
)

// measureOrder fixes the order measures are computed and averaged in.
var measureOrder = []string{MeasureDegree, MeasureBetweenness, MeasureCloseness, MeasureEigenvector, MeasurePageRank}

type Primary struct {
	CompositeCentrality map[string]float64 `json:"composite_centrality"`
	TopNodes            []Ranked           `json:"top_nodes"`
}

type Secondary struct {
	Measures        map[string]map[string]float64 `json:"measures"`
	Strategies      map[string]string             `json:"strategies"`
	EdgeBetweenness map[string]float64            `json:"edge_betweenness"`
	CriticalNodes   []string                      `json:"critical_nodes"`
}

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Info() analysis.Info {
	return analysis.Info{
		ID:               ID,
		Name:             "Node Centrality Analysis",
		Description:      "Calculate various centrality measures to identify important nodes",
		Version:          "1.0.0",
		Category:         "centrality",
		Tags:             []string{"centrality", "importance", "betweenness", "closeness"},
		SupportsDirected: true,
		SupportsWeighted: true,
		MinNodes:         2,
		Parameters: []analysis.ParamSpec{
			{ID: "centrality_types", Name: "Centrality Types", Kind: analysis.KindMultiSelect,
				Default: []string{MeasureBetweenness, MeasureCloseness, MeasureDegree, MeasureEigenvector},
				Options: []analysis.Option{
					{Value: MeasureBetweenness, Label: "Betweenness Centrality"},
					{Value: MeasureCloseness, Label: "Closeness Centrality"},
					{Value: MeasureDegree, Label: "Degree Centrality"},
					{Value: MeasureEigenvector, Label: "Eigenvector Centrality"},
					{Value: MeasurePageRank, Label: "PageRank"},
				}},
			{ID: "normalize", Name: "Normalize Values", Kind: analysis.KindBoolean, Default: true,
				Description: "Normalize betweenness values to the 0-1 range"},
			{ID: "top_nodes", Name: "Top Nodes to Highlight", Kind: analysis.KindNumber, Default: 3.0,
				Min: analysis.Bound(1), Max: analysis.Bound(20)},
		},
	}
}

func (a *Analyzer) Analyze(in analysis.Input) *analysis.Report {
	return analysis.Execute(a.Info(), in, func() any {
		return Primary{CompositeCentrality: map[string]float64{}, TopNodes: []Ranked{}}
	}, a.run)
}

// Chain returns the fallback strategies for a measure.
func Chain(measure string, normalized bool) ([]Strategy, error) {
	switch measure {
	case MeasureDegree:
		return DegreeChain(), nil
	case MeasureBetweenness:
		return BetweennessChain(normalized), nil
	case MeasureCloseness:
		return ClosenessChain(), nil
	case MeasureEigenvector:
		return EigenvectorChain(), nil
	case MeasurePageRank:
		return PageRankChain(), nil
	}
	return nil, fmt.Errorf("unknown centrality measure '%s'", measure)
}

// Measure resolves one measure's chain on g and labels the result.
func Measure(g *graph.Graph, measure string, normalized bool) (map[string]float64, string, error) {
	chain, err := Chain(measure, normalized)
	if err != nil {
		return nil, "", err
	}
	outcome, err := Resolve(g, chain)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute %s centrality: %w", measure, err)
	}
	return Labeled(g, outcome.Scores, 4), outcome.Strategy, nil
}

func (a *Analyzer) run(in analysis.Input, params analysis.Params) (*analysis.Output, error) {
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{
		Directed: graph.HasTypedEdges(in.Edges),
		Weight:   graph.Absolute,
	})
	if err != nil {
		return nil, err
	}

	requested := params.Strings("centrality_types")
	normalized := params.Bool("normalize")
	labels := g.NodeLabels()

	measures := make(map[string]map[string]float64)
	strategies := make(map[string]string)
	var ordered []map[string]float64
	for _, m := range measureOrder {
		if !slices.Contains(requested, m) {
			continue
		}
		scores, strategy, err := Measure(g, m, normalized)
		if err != nil {
			return nil, err
		}
		measures[m] = scores
		strategies[m] = strategy
		ordered = append(ordered, scores)
	}

	composite := Composite(labels, ordered)
	top := Top(labels, composite, params.Int("top_nodes"))

	betweenness, ok := measures[MeasureBetweenness]
	if !ok {
		outcome, err := Resolve(g, BetweennessChain(normalized))
		if err != nil {
			return nil, err
		}
		betweenness = Labeled(g, outcome.Scores, 4)
	}
	edgeScores := EdgeScores(g, true)
	edgeMap := make(map[string]float64, len(edgeScores))
	for i, e := range g.Edges() {
		edgeMap[g.EdgeKey(e)] = analysis.Round(edgeScores[i], 4)
	}

	var viz []analysis.Visualization
	if len(composite) > 0 {
		viz = append(viz, analysis.Visualization{
			Type:       analysis.VizNodeSize,
			DataSource: "composite_centrality",
			Title:      "Node Importance (Composite Score)",
			MinSize:    10,
			MaxSize:    35,
		})
	}
	if len(top) > 0 {
		names := make([]string, len(top))
		for i, r := range top {
			names[i] = r.Node
		}
		viz = append(viz, analysis.Visualization{
			Type:  analysis.VizNodeHighlight,
			Nodes: names,
			Color: "#ff6b6b",
			Title: fmt.Sprintf("Top %d Most Central Nodes", len(top)),
		})
	}

	return &analysis.Output{
		Primary: Primary{CompositeCentrality: composite, TopNodes: top},
		Secondary: Secondary{
			Measures:        measures,
			Strategies:      strategies,
			EdgeBetweenness: edgeMap,
			CriticalNodes:   CriticalNodes(labels, betweenness),
		},
		Visualizations: viz,
		Summary:        summarize(len(requested), top),
		Stats: analysis.GraphStats{
			Directed:  g.Directed(),
			Connected: g.IsWeaklyConnected(),
		},
	}, nil
}

func summarize(measures int, top []Ranked) string {
	if measures == 0 {
		return "Centrality analysis completed."
	}
	parts := []string{fmt.Sprintf("Calculated %d centrality measure(s)", measures)}
	if len(top) > 0 {
		parts = append(parts,
			fmt.Sprintf("Most central node: %s", top[0].Node),
			fmt.Sprintf("Top %d nodes highlighted", len(top)))
	}
	return strings.Join(parts, ". ") + "."
}
