package edges

import (
	"slices"
	"strconv"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/agenthands/graphlens/internal/core/palette"
)

const (
	ColorByStrength     = "weight_strength"
	ColorByRelationship = "relationship_type"
	ColorByFlow         = "flow_direction"
)

const (
	colorPositive = "#27ae60"
	colorNegative = "#e74c3c"
	colorNeutral  = "#95a5a6"
	colorStrong   = "#d73027"

	extremeCount = 3
	defaultWidth = 2
)

type Extremes struct {
	Strongest []string `json:"strongest"`
	Weakest   []string `json:"weakest"`
}

type VisualHints struct {
	Colors   map[string]string  `json:"edge_colors"`
	Widths   map[string]float64 `json:"edge_widths"`
	Labels   map[string]string  `json:"edge_labels"`
	Extremes Extremes           `json:"extreme_edges"`
}

type visualOptions struct {
	coloring   string
	scheme     string
	sizing     bool
	extremes   bool
	showLabels bool
}

// hints assigns every edge a color, a width in [1, 8] and a label. Colors and
// widths scale with absolute weight over the observed range; a graph whose
// edges all weigh the same sits in the middle.
func hints(records []Record, opts visualOptions) VisualHints {
	out := VisualHints{
		Colors:   make(map[string]string, len(records)),
		Widths:   make(map[string]float64, len(records)),
		Labels:   make(map[string]string, len(records)),
		Extremes: Extremes{Strongest: []string{}, Weakest: []string{}},
	}
	if len(records) == 0 {
		return out
	}

	lo, hi := records[0].Abs, records[0].Abs
	for _, r := range records {
		lo = min(lo, r.Abs)
		hi = max(hi, r.Abs)
	}
	span := hi - lo
	scale := func(r Record) float64 {
		if span == 0 {
			return 0.5
		}
		return (r.Abs - lo) / span
	}

	ramp := palette.EdgeRamp(opts.scheme)
	for _, r := range records {
		switch opts.coloring {
		case ColorByStrength:
			out.Colors[r.Key] = ramp[int(scale(r)*float64(len(ramp)-1))]
		case ColorByRelationship:
			switch r.Type {
			case model.EdgeTypePositive:
				out.Colors[r.Key] = colorPositive
			case model.EdgeTypeNegative:
				out.Colors[r.Key] = colorNegative
			default:
				out.Colors[r.Key] = colorNeutral
			}
		case ColorByFlow:
			out.Colors[r.Key] = ramp[len(ramp)/2]
		default:
			out.Colors[r.Key] = colorNeutral
		}

		if opts.sizing {
			out.Widths[r.Key] = analysis.Round(1+scale(r)*7, 1)
		} else {
			out.Widths[r.Key] = defaultWidth
		}

		if opts.showLabels {
			out.Labels[r.Key] = strconv.FormatFloat(r.Weight, 'f', -1, 64)
		} else {
			out.Labels[r.Key] = ""
		}
	}

	if opts.extremes {
		sorted := byStrength(records)
		for _, r := range sorted[:min(extremeCount, len(sorted))] {
			out.Extremes.Strongest = append(out.Extremes.Strongest, r.Key)
		}
		for _, r := range sorted[max(0, len(sorted)-extremeCount):] {
			if !slices.Contains(out.Extremes.Strongest, r.Key) {
				out.Extremes.Weakest = append(out.Extremes.Weakest, r.Key)
			}
		}
	}
	return out
}
