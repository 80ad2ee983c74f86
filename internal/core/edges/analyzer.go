package edges

import (
	"fmt"
	"strings"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/palette"
)

const ID = "edge-analysis"

const (
	FocusComprehensive = "comprehensive"
	FocusWeights       = "weights"
	FocusFlow          = "flow"
	FocusRelationships = "relationships"
	FocusStrength      = "strength"
)

type Primary struct {
	EdgeCount            int                  `json:"edge_count"`
	WeightStatistics     *WeightStats         `json:"weight_statistics"`
	RelationshipSummary  *RelationshipSummary `json:"relationship_summary"`
	StrongestConnections []WeightedEdge       `json:"strongest_connections"`
}

// Secondary holds every section the chosen focus produced plus the
// rendering hints, which are always present.
type Secondary struct {
	*WeightAnalysis
	Flow *FlowAnalysis `json:"flow_analysis,omitempty"`
	*RelationshipAnalysis
	Strength *StrengthAnalysis `json:"strength_analysis,omitempty"`
	VisualHints
}

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Info() analysis.Info {
	return analysis.Info{
		ID:               ID,
		Name:             "Edge Weight Analysis",
		Description:      "Analyze edge weights, relationship polarity and weighted flow with edge level visualizations",
		Version:          "1.0.0",
		Category:         "edges",
		Tags:             []string{"edges", "weights", "flow", "relationships"},
		SupportsDirected: true,
		SupportsWeighted: true,
		MinNodes:         1,
		MinEdges:         1,
		Parameters: []analysis.ParamSpec{
			{ID: "analysis_focus", Name: "Analysis Focus", Kind: analysis.KindSelect, Default: FocusComprehensive,
				Options: []analysis.Option{
					{Value: FocusComprehensive, Label: "Comprehensive"},
					{Value: FocusWeights, Label: "Weight Distribution"},
					{Value: FocusFlow, Label: "Flow Patterns"},
					{Value: FocusRelationships, Label: "Relationship Types"},
					{Value: FocusStrength, Label: "Connection Strength"},
				}},
			{ID: "weight_categories", Name: "Weight Categories", Kind: analysis.KindNumber, Default: 5.0,
				Min: analysis.Bound(2), Max: analysis.Bound(10)},
			{ID: "edge_coloring", Name: "Edge Coloring", Kind: analysis.KindSelect, Default: ColorByStrength,
				Options: []analysis.Option{
					{Value: ColorByStrength, Label: "Weight Strength"},
					{Value: ColorByRelationship, Label: "Relationship Type"},
					{Value: ColorByFlow, Label: "Flow Direction"},
				}},
			{ID: "edge_sizing", Name: "Size Edges by Weight", Kind: analysis.KindBoolean, Default: true},
			{ID: "highlight_extremes", Name: "Highlight Extreme Edges", Kind: analysis.KindBoolean, Default: true},
			{ID: "show_edge_labels", Name: "Show Edge Labels", Kind: analysis.KindBoolean, Default: false},
			{ID: "color_scheme", Name: "Color Scheme", Kind: analysis.KindSelect, Default: palette.Strength,
				Options: []analysis.Option{
					{Value: palette.Strength, Label: "Strength (Blue-Red)"},
					{Value: palette.Heat, Label: "Heat"},
					{Value: palette.Traffic, Label: "Traffic Light"},
					{Value: palette.Monochrome, Label: "Monochrome"},
					{Value: palette.Rainbow, Label: "Rainbow"},
				}},
		},
	}
}

func (a *Analyzer) Analyze(in analysis.Input) *analysis.Report {
	return analysis.Execute(a.Info(), in, func() any {
		return Primary{StrongestConnections: []WeightedEdge{}}
	}, a.run)
}

func (a *Analyzer) run(in analysis.Input, params analysis.Params) (*analysis.Output, error) {
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{Directed: true, Weight: graph.Raw})
	if err != nil {
		return nil, err
	}
	records := Records(g, in.Edges)
	focus := params.String("analysis_focus")
	wants := func(section string) bool { return focus == FocusComprehensive || focus == section }

	var sec Secondary
	primary := Primary{EdgeCount: len(in.Edges), StrongestConnections: []WeightedEdge{}}
	if wants(FocusWeights) {
		w := Weights(records, params.Int("weight_categories"))
		sec.WeightAnalysis = &w
		primary.WeightStatistics = &w.Stats
	}
	if wants(FocusFlow) {
		f := Flows(g)
		sec.Flow = &f
	}
	if wants(FocusRelationships) {
		r := Relationships(records)
		sec.RelationshipAnalysis = &r
		primary.RelationshipSummary = &r.Summary
	}
	if wants(FocusStrength) {
		s := Strength(records)
		sec.Strength = &s
		primary.StrongestConnections = s.Strongest
	}

	coloring := params.String("edge_coloring")
	sizing := params.Bool("edge_sizing")
	extremes := params.Bool("highlight_extremes")
	sec.VisualHints = hints(records, visualOptions{
		coloring:   coloring,
		scheme:     params.String("color_scheme"),
		sizing:     sizing,
		extremes:   extremes,
		showLabels: params.Bool("show_edge_labels"),
	})

	viz := []analysis.Visualization{{
		Type:         analysis.VizEdgeColor,
		DataSource:   "edge_colors",
		Title:        fmt.Sprintf("Edge Analysis (%s)", titleCase(coloring)),
		ColorMapping: sec.Colors,
	}}
	if sizing {
		viz = append(viz, analysis.Visualization{
			Type:       analysis.VizEdgeWidth,
			DataSource: "edge_widths",
			Title:      "Edge Weight Scaling",
			MinWidth:   1,
			MaxWidth:   8,
		})
	}
	if extremes && len(sec.Extremes.Strongest) > 0 {
		viz = append(viz, analysis.Visualization{
			Type:  analysis.VizEdgeHighlight,
			Edges: sec.Extremes.Strongest,
			Color: colorStrong,
			Title: "Strongest Connections",
		})
	}

	hasWeights, hasTypes := false, false
	for _, e := range in.Edges {
		hasWeights = hasWeights || e.WeightOrDefault() != 1
		hasTypes = hasTypes || e.Type != ""
	}

	return &analysis.Output{
		Primary:        primary,
		Secondary:      sec,
		Visualizations: viz,
		Summary:        summarize(len(in.Edges), primary),
		Stats: analysis.GraphStats{
			Directed:  true,
			Connected: g.IsWeaklyConnected(),
			Extra: map[string]any{
				"analysis_focus": focus,
				"has_weights":    hasWeights,
				"has_types":      hasTypes,
			},
		},
	}, nil
}

func summarize(edges int, p Primary) string {
	var parts []string
	if p.WeightStatistics != nil {
		parts = append(parts,
			fmt.Sprintf("Analyzed %d edges", edges),
			fmt.Sprintf("Average weight: %.2f", p.WeightStatistics.Mean))
	}
	if r := p.RelationshipSummary; r != nil {
		if r.PositiveCount > 0 {
			parts = append(parts, fmt.Sprintf("%d positive relationships", r.PositiveCount))
		}
		if r.NegativeCount > 0 {
			parts = append(parts, fmt.Sprintf("%d negative relationships", r.NegativeCount))
		}
	}
	if len(parts) == 0 {
		return "Edge analysis completed."
	}
	return strings.Join(parts, ". ") + "."
}

// titleCase turns "weight_strength" into "Weight Strength".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
