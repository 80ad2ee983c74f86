package analysis

import (
	"math"
	"time"
)

// GraphStats describes the graph an analyzer actually ran on.
type GraphStats struct {
	Nodes     int            `json:"nodes"`
	Edges     int            `json:"edges"`
	Directed  bool           `json:"is_directed"`
	Connected bool           `json:"is_connected"`
	Extra     map[string]any `json:"extra,omitempty"`
}

type Metadata struct {
	AnalysisID      string     `json:"analysis_id"`
	AnalysisName    string     `json:"analysis_name"`
	RunID           string     `json:"run_id"`
	Timestamp       time.Time  `json:"timestamp"`
	ParametersUsed  Params     `json:"parameters_used"`
	ExecutionTimeMs float64    `json:"execution_time_ms"`
	GraphStats      GraphStats `json:"graph_stats"`
}

// Visualization is a rendering hint. Only ids, labels and colors are emitted;
// drawing is left to whoever consumes the report.
type Visualization struct {
	Type         string            `json:"type"`
	DataSource   string            `json:"data_source,omitempty"`
	Title        string            `json:"title"`
	Nodes        []string          `json:"nodes,omitempty"`
	Edges        []string          `json:"edges,omitempty"`
	Color        string            `json:"color,omitempty"`
	ColorMapping map[string]string `json:"color_mapping,omitempty"`
	ColorScale   string            `json:"color_scale,omitempty"`
	MinSize      float64           `json:"min_size,omitempty"`
	MaxSize      float64           `json:"max_size,omitempty"`
	MinWidth     float64           `json:"min_width,omitempty"`
	MaxWidth     float64           `json:"max_width,omitempty"`
}

const (
	VizNodeSize      = "node_size"
	VizNodeColor     = "node_color"
	VizNodeHighlight = "node_highlight"
	VizEdgeColor     = "edge_color"
	VizEdgeWidth     = "edge_width"
	VizEdgeHighlight = "edge_highlight"
)

// Report is what every registered analyzer returns. Error is empty on success;
// on failure it carries the cause and Primary holds the analyzer's empty result.
type Report struct {
	Metadata       Metadata        `json:"metadata"`
	Primary        any             `json:"primary"`
	Secondary      any             `json:"secondary,omitempty"`
	Visualizations []Visualization `json:"visualizations"`
	Summary        string          `json:"summary"`
	Error          string          `json:"error"`

	// Invalid marks a failure caused by the input rather than the computation.
	Invalid bool `json:"-"`
}

func (r *Report) Failed() bool {
	return r.Error != ""
}

// Output is what an analyzer body hands back to Execute.
type Output struct {
	Primary        any
	Secondary      any
	Visualizations []Visualization
	Summary        string
	Stats          GraphStats
}

// Round rounds half away from zero to the given number of decimal places.
// Values too large to scale are returned unchanged.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	scaled := x * p
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return x
	}
	return math.Round(scaled) / p
}

// RoundAll rounds every value of m in place and returns it.
func RoundAll(m map[string]float64, places int) map[string]float64 {
	for k, v := range m {
		m[k] = Round(v, places)
	}
	return m
}
