package paths

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
)

const ID = "path-analysis"

const (
	TypeComprehensive = "comprehensive"
	TypeShortestOnly  = "shortest_only"
	TypeAllPaths      = "all_paths"
	TypeEfficiency    = "efficiency"
	TypeBottlenecks   = "bottlenecks"
)

type Endpoints struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type Primary struct {
	SourceTarget     Endpoints `json:"source_target"`
	ShortestPath     []string  `json:"shortest_path"`
	ShortestDistance *float64  `json:"shortest_distance"`
	PathCount        int       `json:"path_count"`
}

// Secondary carries every section that ran; sections that did not run are
// left out of the JSON.
type Secondary struct {
	SourceNode string `json:"source_node"`
	TargetNode string `json:"target_node"`
	SourceID   string `json:"source_id"`
	TargetID   string `json:"target_id"`
	*ShortestResult
	*PathsResult
	*EfficiencyResult
	*BottleneckResult
}

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Info() analysis.Info {
	return analysis.Info{
		ID:               ID,
		Name:             "Advanced Path Analysis",
		Description:      "Comprehensive path analysis including shortest paths, path efficiency, and bottleneck identification",
		Version:          "1.0.0",
		Category:         "Path Analysis",
		Tags:             []string{"paths", "shortest", "efficiency", "bottlenecks", "connectivity"},
		SupportsDirected: true,
		SupportsWeighted: true,
		MinNodes:         2,
		Parameters: []analysis.ParamSpec{
			{ID: "source_node", Name: "Source Node", Kind: analysis.KindNodeSelect, Default: analysis.Auto,
				Description: "Starting node for path analysis (auto = first node)"},
			{ID: "target_node", Name: "Target Node", Kind: analysis.KindNodeSelect, Default: analysis.Auto,
				Description: "Ending node for path analysis (auto = last node)"},
			{ID: "analysis_type", Name: "Analysis Type", Kind: analysis.KindSelect, Default: TypeComprehensive,
				Options: []analysis.Option{
					{Value: TypeComprehensive, Label: "Comprehensive (All Analysis)"},
					{Value: TypeShortestOnly, Label: "Shortest Paths Only"},
					{Value: TypeAllPaths, Label: "All Simple Paths"},
					{Value: TypeEfficiency, Label: "Path Efficiency"},
					{Value: TypeBottlenecks, Label: "Bottleneck Analysis"},
				}},
			{ID: "max_path_length", Name: "Maximum Path Length", Kind: analysis.KindNumber, Default: 6.0,
				Min: analysis.Bound(1), Max: analysis.Bound(15), Description: "Maximum number of hops in paths to consider"},
			{ID: "path_limit", Name: "Path Limit", Kind: analysis.KindNumber, Default: 20.0,
				Min: analysis.Bound(5), Max: analysis.Bound(100), Description: "Maximum number of paths to analyze"},
			{ID: "highlight_critical", Name: "Highlight Critical Paths", Kind: analysis.KindBoolean, Default: true},
		},
	}
}

func (a *Analyzer) Analyze(in analysis.Input) *analysis.Report {
	return analysis.Execute(a.Info(), in, func() any {
		return Primary{ShortestPath: []string{}}
	}, a.run)
}

func (a *Analyzer) run(in analysis.Input, params analysis.Params) (*analysis.Output, error) {
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{Directed: true, Weight: graph.Distance})
	if err != nil {
		return nil, err
	}

	first, last := g.FirstLast(in.Nodes)
	src := g.Endpoint(params.String("source_node"), first)
	dst := g.Endpoint(params.String("target_node"), last)
	if src == dst {
		for i := range g.NodeCount() {
			if i != src {
				dst = i
				break
			}
		}
	}

	kind := params.String("analysis_type")
	runs := func(section string) bool {
		return kind == TypeComprehensive || kind == section
	}

	sec := Secondary{
		SourceNode: g.Label(src),
		TargetNode: g.Label(dst),
		SourceID:   g.Node(src).ID,
		TargetID:   g.Node(dst).ID,
	}
	if runs(TypeShortestOnly) {
		sec.ShortestResult = Shortest(g, src, dst)
	}
	if runs(TypeAllPaths) {
		sec.PathsResult = All(g, src, dst, params.Int("max_path_length"), params.Int("path_limit"))
	}
	if runs(TypeEfficiency) {
		sec.EfficiencyResult = Efficiency(g)
	}
	if runs(TypeBottlenecks) {
		sec.BottleneckResult, err = Bottlenecks(g)
		if err != nil {
			return nil, err
		}
	}

	primary := Primary{SourceTarget: Endpoints{Source: sec.SourceNode, Target: sec.TargetNode}}
	if sec.ShortestResult != nil {
		primary.ShortestPath = sec.ShortestPath
		primary.ShortestDistance = sec.ShortestDistance
	}
	if sec.PathsResult != nil {
		primary.PathCount = sec.TotalPaths
	}

	return &analysis.Output{
		Primary:        primary,
		Secondary:      sec,
		Visualizations: visualize(sec, params.Bool("highlight_critical")),
		Summary:        summarize(sec),
		Stats: analysis.GraphStats{
			Directed:  true,
			Connected: g.IsWeaklyConnected(),
			Extra:     map[string]any{"analysis_type": kind},
		},
	}, nil
}

func visualize(sec Secondary, highlight bool) []analysis.Visualization {
	viz := []analysis.Visualization{}
	if sec.BottleneckResult == nil {
		return viz
	}
	if highlight {
		viz = append(viz, analysis.Visualization{
			Type:  analysis.VizNodeHighlight,
			Nodes: slices.Clone(sec.CriticalNodes),
			Color: "#e74c3c",
			Title: "Critical Path Nodes",
		})
	}
	return append(viz,
		analysis.Visualization{
			Type:       analysis.VizNodeSize,
			DataSource: "node_betweenness",
			Title:      "Path Bottlenecks",
			MinSize:    10,
			MaxSize:    30,
		},
		analysis.Visualization{
			Type:       analysis.VizEdgeColor,
			DataSource: "edge_criticality",
			Title:      "Edge Importance in Paths",
			ColorScale: "yellow_red",
		},
	)
}

func summarize(sec Secondary) string {
	var parts []string
	if sec.ShortestResult != nil {
		if sec.ShortestDistance != nil {
			parts = append(parts, fmt.Sprintf("Shortest path: %.1f steps", *sec.ShortestDistance))
		} else {
			parts = append(parts, "Shortest path: No path found")
		}
	}
	if sec.PathsResult != nil {
		parts = append(parts, fmt.Sprintf("Found %d paths", sec.TotalPaths))
	}
	if sec.EfficiencyResult != nil {
		if sec.AvgPathEfficiency != nil {
			parts = append(parts, fmt.Sprintf("Average efficiency: %.2f", *sec.AvgPathEfficiency))
		} else {
			parts = append(parts, "Average efficiency: N/A")
		}
	}
	if sec.BottleneckResult != nil {
		parts = append(parts, fmt.Sprintf("%d critical nodes identified", len(sec.CriticalNodes)))
	}
	if len(parts) == 0 {
		return "Path analysis completed."
	}
	return strings.Join(parts, ". ") + "."
}
