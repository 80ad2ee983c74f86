package ranking

import (
	"fmt"
	"strings"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/centrality"
	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/palette"
)

const ID = "node-importance"

const (
	unrankedSize = 12
	topRanking   = 10
)

type TierSummary struct {
	Tier     int     `json:"tier"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
	Color    string  `json:"color"`
}

type Primary struct {
	ImportanceRanking []centrality.Ranked `json:"importance_ranking"`
	TierSummary       []TierSummary       `json:"tier_summary"`
}

type Secondary struct {
	ImportanceScores map[string]float64  `json:"importance_scores"`
	FullRanking      []centrality.Ranked `json:"full_ranking"`
	TierAssignments  map[string]int      `json:"tier_assignments"`
	NodeColors       map[string]string   `json:"node_colors"`
	NodeSizes        map[string]float64  `json:"node_sizes"`
	NodeLabels       map[string]string   `json:"node_labels"`
	Statistics       Stats               `json:"statistics"`
	TierData         []Tier              `json:"tier_data"`
}

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Info() analysis.Info {
	return analysis.Info{
		ID:               ID,
		Name:             "Node Importance Ranking",
		Description:      "Rank nodes by importance and highlight them in tiers with configurable color schemes",
		Version:          "1.0.0",
		Category:         "centrality",
		Tags:             []string{"importance", "ranking", "tiers", "visualization"},
		SupportsDirected: true,
		SupportsWeighted: true,
		MinNodes:         1,
		Parameters: []analysis.ParamSpec{
			{ID: "ranking_method", Name: "Ranking Method", Kind: analysis.KindSelect, Default: MethodComposite,
				Options: []analysis.Option{
					{Value: MethodComposite, Label: "Composite Score"},
					{Value: MethodDegree, Label: "Degree Centrality"},
					{Value: MethodBetweenness, Label: "Betweenness Centrality"},
					{Value: MethodCloseness, Label: "Closeness Centrality"},
					{Value: MethodPageRank, Label: "PageRank"},
					{Value: MethodClustering, Label: "Clustering Coefficient"},
				}},
			{ID: "highlight_tiers", Name: "Importance Tiers", Kind: analysis.KindNumber, Default: 4.0,
				Min: analysis.Bound(2), Max: analysis.Bound(8)},
			{ID: "top_percent", Name: "Top Percent to Highlight", Kind: analysis.KindNumber, Default: 50.0,
				Min: analysis.Bound(10), Max: analysis.Bound(100)},
			{ID: "color_scheme", Name: "Color Scheme", Kind: analysis.KindSelect, Default: palette.Heat,
				Options: []analysis.Option{
					{Value: palette.Heat, Label: "Heat (Red-Yellow)"},
					{Value: palette.Cool, Label: "Cool (Blue-Green)"},
					{Value: palette.Traffic, Label: "Traffic Light"},
					{Value: palette.Rainbow, Label: "Rainbow Spectrum"},
					{Value: palette.Monochrome, Label: "Monochrome Blue"},
				}},
			{ID: "show_labels", Name: "Show Score Labels", Kind: analysis.KindBoolean, Default: true},
			{ID: "tier_sizing", Name: "Size by Tier", Kind: analysis.KindBoolean, Default: true},
		},
	}
}

func (a *Analyzer) Analyze(in analysis.Input) *analysis.Report {
	return analysis.Execute(a.Info(), in, func() any {
		return Primary{ImportanceRanking: []centrality.Ranked{}, TierSummary: []TierSummary{}}
	}, a.run)
}

func (a *Analyzer) run(in analysis.Input, params analysis.Params) (*analysis.Output, error) {
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{
		Directed: graph.HasTypedEdges(in.Edges),
		Weight:   graph.Absolute,
	})
	if err != nil {
		return nil, err
	}

	method := params.String("ranking_method")
	raw, err := Importance(g, method)
	if err != nil {
		return nil, err
	}
	labels := g.NodeLabels()
	scores := make(map[string]float64, len(raw))
	for i, s := range raw {
		scores[labels[i]] = s
	}
	ranked := centrality.Rank(labels, scores)

	selected := SelectCount(len(ranked), params.Float("top_percent"))
	tierCount := params.Int("highlight_tiers")
	tiers := Split(ranked[:min(selected, len(ranked))], tierCount)
	colors := palette.Tiers(tierCount, params.String("color_scheme"))
	showLabels := params.Bool("show_labels")
	tierSizing := params.Bool("tier_sizing")

	sec := Secondary{
		ImportanceScores: scores,
		FullRanking:      ranked,
		TierAssignments:  make(map[string]int, len(ranked)),
		NodeColors:       make(map[string]string, len(ranked)),
		NodeSizes:        make(map[string]float64, len(ranked)),
		NodeLabels:       make(map[string]string, len(ranked)),
		TierData:         tiers,
	}
	label := func(r centrality.Ranked) string {
		if !showLabels {
			return r.Node
		}
		return fmt.Sprintf("%s\n(%.3f)", r.Node, r.Score)
	}

	summaries := make([]TierSummary, 0, len(tiers))
	for i, tier := range tiers {
		size := 15.0
		if tierSizing {
			size = float64(max(30-4*i, 10))
		}
		for _, r := range tier.Nodes {
			sec.NodeColors[r.Node] = colors[i]
			sec.NodeSizes[r.Node] = size
			sec.TierAssignments[r.Node] = i + 1
			sec.NodeLabels[r.Node] = label(r)
		}
		summaries = append(summaries, TierSummary{Tier: i + 1, Count: tier.Count, AvgScore: tier.AvgScore, Color: colors[i]})
	}
	for _, r := range ranked[min(selected, len(ranked)):] {
		if _, done := sec.NodeColors[r.Node]; done {
			continue
		}
		sec.NodeColors[r.Node] = palette.Neutral
		sec.NodeSizes[r.Node] = unrankedSize
		sec.TierAssignments[r.Node] = 0
		sec.NodeLabels[r.Node] = label(r)
	}
	sec.Statistics = Describe(ranked, len(tiers))

	title := method
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	viz := []analysis.Visualization{{
		Type:         analysis.VizNodeColor,
		DataSource:   "node_colors",
		Title:        fmt.Sprintf("Importance Ranking (%s)", title),
		ColorMapping: sec.NodeColors,
	}}
	if tierSizing {
		viz = append(viz, analysis.Visualization{
			Type:       analysis.VizNodeSize,
			DataSource: "importance_scores",
			Title:      "Importance Size",
			MinSize:    10,
			MaxSize:    30,
		})
	}
	if len(tiers) > 0 {
		top := make([]string, len(tiers[0].Nodes))
		for i, r := range tiers[0].Nodes {
			top[i] = r.Node
		}
		viz = append(viz, analysis.Visualization{
			Type:  analysis.VizNodeHighlight,
			Nodes: top,
			Color: colors[0],
			Title: "Tier 1 (Most Important)",
		})
	}

	summary := "Importance ranking completed."
	if len(ranked) > 0 {
		summary = fmt.Sprintf("Most important: %s (%.3f). Ranked %d nodes. Created %d importance tiers. Method: %s.",
			ranked[0].Node, ranked[0].Score, len(ranked), len(tiers), title)
	}

	return &analysis.Output{
		Primary: Primary{
			ImportanceRanking: ranked[:min(topRanking, len(ranked))],
			TierSummary:       summaries,
		},
		Secondary:      sec,
		Visualizations: viz,
		Summary:        summary,
		Stats: analysis.GraphStats{
			Directed:  g.Directed(),
			Connected: g.IsWeaklyConnected(),
			Extra: map[string]any{
				"ranking_method":    method,
				"tiers_created":     len(tiers),
				"nodes_highlighted": selected,
			},
		},
	}, nil
}
