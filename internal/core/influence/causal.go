package influence

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
)

const ID = "causal-paths"

// Path is one causal chain. Weight is the product of its signed edge weights.
type Path struct {
	Path   []string `json:"path"`
	Weight float64  `json:"weight"`
	Length int      `json:"length"`
}

type Primary struct {
	InfluenceScores map[string]float64 `json:"influence_scores"`
	PositivePaths   [][]string         `json:"positive_paths"`
	NegativePaths   [][]string         `json:"negative_paths"`
}

type Secondary struct {
	DetailedPositivePaths []Path `json:"detailed_positive_paths"`
	DetailedNegativePaths []Path `json:"detailed_negative_paths"`
	MixedPaths            []Path `json:"mixed_paths"`
	Source                string `json:"path_analysis_source"`
	Target                string `json:"path_analysis_target"`
}

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Info() analysis.Info {
	return analysis.Info{
		ID:               ID,
		Name:             "Causal Path Analysis",
		Description:      "Analyze causal relationships, influence scores, and positive/negative pathways in graphs",
		Version:          "1.0.0",
		Category:         "causal",
		Tags:             []string{"causal", "influence", "paths"},
		SupportsDirected: true,
		SupportsWeighted: true,
		MinNodes:         1,
		Parameters: []analysis.ParamSpec{
			{ID: "source_node", Name: "Source Node", Kind: analysis.KindNodeSelect, Default: analysis.Auto,
				Description: "Starting node for path analysis (auto = first node)"},
			{ID: "target_node", Name: "Target Node", Kind: analysis.KindNodeSelect, Default: analysis.Auto,
				Description: "Ending node for path analysis (auto = last node)"},
			{ID: "max_path_length", Name: "Maximum Path Length", Kind: analysis.KindNumber, Default: 5.0,
				Min: analysis.Bound(1), Max: analysis.Bound(15), Description: "Maximum number of hops to consider"},
			{ID: "strict_polarity", Name: "Strict Polarity", Kind: analysis.KindBoolean, Default: true,
				Description: "Classify paths by signed weight (zero-weight edges make a path mixed) instead of by edge type"},
		},
	}
}

func (a *Analyzer) Analyze(in analysis.Input) *analysis.Report {
	return analysis.Execute(a.Info(), in, func() any {
		return Primary{
			InfluenceScores: map[string]float64{},
			PositivePaths:   [][]string{},
			NegativePaths:   [][]string{},
		}
	}, a.run)
}

func (a *Analyzer) run(in analysis.Input, params analysis.Params) (*analysis.Output, error) {
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{Directed: true, Weight: graph.Signed})
	if err != nil {
		return nil, err
	}

	scores := analysis.RoundAll(Scores(g), 3)

	first, last := g.FirstLast(in.Nodes)
	src := g.Endpoint(params.String("source_node"), first)
	dst := g.Endpoint(params.String("target_node"), last)

	positive, negative, mixed := []Path{}, []Path{}, []Path{}
	var overflow []string
	if src != dst {
		strict := params.Bool("strict_polarity")
		g.SimplePaths(src, dst, params.Int("max_path_length"), func(path []int) bool {
			w := product(g, path)
			if math.IsInf(w, 0) || math.IsNaN(w) {
				overflow = g.Labels(path)
				return false
			}
			p := Path{Path: g.Labels(path), Weight: analysis.Round(w, 3), Length: len(path) - 1}
			switch Classify(g, path, strict) {
			case Positive:
				positive = append(positive, p)
			case Negative:
				negative = append(negative, p)
			default:
				mixed = append(mixed, p)
			}
			return true
		})
	}
	if overflow != nil {
		return nil, analysis.NewValidationError("edges", "Weight of path %s overflows", strings.Join(overflow, " → "))
	}
	for _, list := range [][]Path{positive, negative, mixed} {
		slices.SortStableFunc(list, byStrength)
	}

	return &analysis.Output{
		Primary: Primary{
			InfluenceScores: scores,
			PositivePaths:   pathLabels(positive),
			NegativePaths:   pathLabels(negative),
		},
		Secondary: Secondary{
			DetailedPositivePaths: positive,
			DetailedNegativePaths: negative,
			MixedPaths:            mixed,
			Source:                g.Label(src),
			Target:                g.Label(dst),
		},
		Visualizations: []analysis.Visualization{{
			Type:       analysis.VizNodeSize,
			DataSource: "influence_scores",
			Title:      "Node Influence",
			MinSize:    10,
			MaxSize:    30,
		}},
		Summary: summarize(g, scores, len(positive), len(negative), len(mixed)),
		Stats: analysis.GraphStats{
			Directed:  true,
			Connected: g.IsWeaklyConnected(),
		},
	}, nil
}

func product(g *graph.Graph, path []int) float64 {
	w := 1.0
	for i := 0; i+1 < len(path); i++ {
		w *= g.MustEdge(path[i], path[i+1]).Weight
	}
	return w
}

func byStrength(a, b Path) int {
	x, y := math.Abs(a.Weight), math.Abs(b.Weight)
	switch {
	case x > y:
		return -1
	case x < y:
		return 1
	}
	return 0
}

func pathLabels(paths []Path) [][]string {
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = p.Path
	}
	return out
}

func summarize(g *graph.Graph, scores map[string]float64, positive, negative, mixed int) string {
	var parts []string
	if g.NodeCount() > 0 {
		// node order, first wins on ties
		best := g.Label(0)
		for i := range g.NodeCount() {
			if label := g.Label(i); math.Abs(scores[label]) > math.Abs(scores[best]) {
				best = label
			}
		}
		parts = append(parts, fmt.Sprintf("Highest influence: %s (%v)", best, scores[best]))
	}
	parts = append(parts, fmt.Sprintf("Found %d positive path(s)", positive))
	parts = append(parts, fmt.Sprintf("%d negative path(s)", negative))
	if mixed > 0 {
		parts = append(parts, fmt.Sprintf("%d mixed path(s)", mixed))
	}
	return strings.Join(parts, ". ") + "."
}
