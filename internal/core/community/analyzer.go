package community

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/palette"
)

const ID = "community-detection"

const (
	AlgorithmLouvain          = "louvain"
	AlgorithmGirvanNewman     = "girvan_newman"
	AlgorithmLabelPropagation = "label_propagation"
	AlgorithmGreedyModularity = "greedy_modularity"
)

type AlgorithmInfo struct {
	Name            string   `json:"name"`
	Resolution      *float64 `json:"resolution,omitempty"`
	SupportsWeights bool     `json:"supports_weights"`
	Hierarchical    bool     `json:"hierarchical,omitempty"`
}

type Community struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Size    int      `json:"size"`
	Nodes   []string `json:"nodes"`
	NodeIDs []string `json:"node_ids"`
}

type Primary struct {
	Communities   []Community `json:"communities"`
	Modularity    *float64    `json:"modularity"`
	AlgorithmUsed string      `json:"algorithm_used"`
}

type Secondary struct {
	CommunityColors   map[string]string `json:"community_colors"`
	CommunitySizes    map[string]int    `json:"community_sizes"`
	LargestCommunity  *Community        `json:"largest_community"`
	SmallestCommunity *Community        `json:"smallest_community"`
}

// Select returns the detector for an algorithm id together with its
// description.
func Select(algorithm string, resolution float64) (Detector, AlgorithmInfo, error) {
	switch algorithm {
	case AlgorithmLouvain:
		return NewLouvain(resolution), AlgorithmInfo{Name: "Louvain", Resolution: &resolution, SupportsWeights: true}, nil
	case AlgorithmGirvanNewman:
		return NewGirvanNewman(), AlgorithmInfo{Name: "Girvan-Newman", Hierarchical: true}, nil
	case AlgorithmLabelPropagation:
		return NewLabelPropagation(), AlgorithmInfo{Name: "Label Propagation", SupportsWeights: true}, nil
	case AlgorithmGreedyModularity:
		return NewGreedyModularity(resolution), AlgorithmInfo{Name: "Greedy Modularity", Resolution: &resolution, SupportsWeights: true}, nil
	}
	return nil, AlgorithmInfo{}, fmt.Errorf("unknown algorithm: %s", algorithm)
}

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Info() analysis.Info {
	return analysis.Info{
		ID:               ID,
		Name:             "Community Detection",
		Description:      "Identify groups and clusters of densely connected nodes",
		Version:          "1.0.0",
		Category:         "community",
		Tags:             []string{"community", "clustering", "modularity", "groups"},
		SupportsDirected: false,
		SupportsWeighted: true,
		MinNodes:         3,
		MinEdges:         1,
		Parameters: []analysis.ParamSpec{
			{ID: "algorithm", Name: "Algorithm", Kind: analysis.KindSelect, Default: AlgorithmLouvain,
				Options: []analysis.Option{
					{Value: AlgorithmLouvain, Label: "Louvain"},
					{Value: AlgorithmGirvanNewman, Label: "Girvan-Newman"},
					{Value: AlgorithmLabelPropagation, Label: "Label Propagation"},
					{Value: AlgorithmGreedyModularity, Label: "Greedy Modularity"},
				}},
			{ID: "resolution", Name: "Resolution", Kind: analysis.KindNumber, Default: 1.0,
				Min: analysis.Bound(0.1), Max: analysis.Bound(3),
				Description: "Higher values favour smaller communities"},
			{ID: "color_communities", Name: "Color Communities", Kind: analysis.KindBoolean, Default: true},
			{ID: "show_modularity", Name: "Show Modularity", Kind: analysis.KindBoolean, Default: true},
		},
	}
}

func (a *Analyzer) Analyze(in analysis.Input) *analysis.Report {
	return analysis.Execute(a.Info(), in, func() any {
		return Primary{Communities: []Community{}}
	}, a.run)
}

func (a *Analyzer) run(in analysis.Input, params analysis.Params) (*analysis.Output, error) {
	g, err := graph.Build(in.Nodes, in.Edges, graph.Options{Directed: false, Weight: graph.Absolute})
	if err != nil {
		return nil, err
	}

	resolution := params.Float("resolution")
	detector, info, err := Select(params.String("algorithm"), resolution)
	if err != nil {
		return nil, err
	}
	parts := detector.Detect(g)

	var modularity *float64
	if params.Bool("show_modularity") && len(parts) > 1 {
		if q, ok := Modularity(g, parts, resolution); ok {
			q = analysis.Round(q, 4)
			modularity = &q
		}
	}

	slices.SortStableFunc(parts, func(x, y []int) int { return len(y) - len(x) })
	communities := make([]Community, len(parts))
	sec := Secondary{
		CommunityColors: make(map[string]string),
		CommunitySizes:  make(map[string]int, g.NodeCount()),
	}
	colorBy := params.Bool("color_communities")
	for i, members := range parts {
		c := Community{
			ID:      i,
			Name:    fmt.Sprintf("Community %d", i+1),
			Size:    len(members),
			Nodes:   g.Labels(members),
			NodeIDs: make([]string, len(members)),
		}
		for j, v := range members {
			c.NodeIDs[j] = g.Node(v).ID
		}
		for _, label := range c.Nodes {
			sec.CommunitySizes[label] = c.Size
			if colorBy {
				sec.CommunityColors[label] = palette.Community(i)
			}
		}
		communities[i] = c
	}
	if len(communities) > 0 {
		sec.LargestCommunity = &communities[0]
		sec.SmallestCommunity = &communities[len(communities)-1]
	}

	var viz []analysis.Visualization
	if len(sec.CommunityColors) > 0 {
		viz = append(viz, analysis.Visualization{
			Type:         analysis.VizNodeColor,
			DataSource:   "community_colors",
			Title:        fmt.Sprintf("Communities (Algorithm: %s)", info.Name),
			ColorMapping: sec.CommunityColors,
		})
	}
	if len(sec.CommunitySizes) > 0 {
		viz = append(viz, analysis.Visualization{
			Type:       analysis.VizNodeSize,
			DataSource: "community_sizes",
			Title:      "Community Size",
			MinSize:    12,
			MaxSize:    25,
		})
	}

	return &analysis.Output{
		Primary: Primary{
			Communities:   communities,
			Modularity:    modularity,
			AlgorithmUsed: info.Name,
		},
		Secondary:      sec,
		Visualizations: viz,
		Summary:        summarize(communities, modularity, info.Name),
		Stats: analysis.GraphStats{
			Connected: g.IsWeaklyConnected(),
			Extra: map[string]any{
				"algorithm":         info,
				"communities_found": len(communities),
				"modularity":        modularity,
			},
		},
	}, nil
}

func summarize(communities []Community, modularity *float64, algorithm string) string {
	if len(communities) == 0 {
		return "Community detection completed."
	}
	parts := []string{
		fmt.Sprintf("Found %d communities", len(communities)),
		fmt.Sprintf("Largest has %d nodes", communities[0].Size),
	}
	if modularity != nil {
		parts = append(parts, fmt.Sprintf("Modularity: %v", *modularity))
	}
	parts = append(parts, "Algorithm: "+algorithm)
	return strings.Join(parts, ". ") + "."
}
