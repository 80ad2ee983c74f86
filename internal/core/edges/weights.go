// Package edges characterises a graph by its edges: weight distribution,
// weighted flow through nodes, relationship polarity and connection strength.
package edges

import (
	"cmp"
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/common"
	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/model"
	"gonum.org/v1/gonum/floats"
)

// Record is one input edge as this package sees it. Repeated pairs stay
// separate records.
type Record struct {
	Key    string
	Source int
	Target int
	Type   string
	Weight float64
	Abs    float64
}

// Records flattens the input edges in order. An edge without a type is a
// positive one.
func Records(g *graph.Graph, edges []model.EdgeRecord) []Record {
	out := make([]Record, 0, len(edges))
	for _, e := range edges {
		u, _ := g.Index(e.Source)
		v, _ := g.Index(e.Target)
		typ := e.Type
		if typ == "" {
			typ = model.EdgeTypePositive
		}
		w := e.WeightOrDefault()
		out = append(out, Record{
			Key:    g.Label(u) + " → " + g.Label(v),
			Source: u,
			Target: v,
			Type:   typ,
			Weight: w,
			Abs:    max(w, -w),
		})
	}
	return out
}

type WeightStats struct {
	Count  int      `json:"count"`
	Mean   float64  `json:"mean_weight"`
	Median float64  `json:"median_weight"`
	Min    float64  `json:"min_weight"`
	Max    float64  `json:"max_weight"`
	Range  float64  `json:"weight_range"`
	StdDev *float64 `json:"std_dev,omitempty"`
}

type Category struct {
	Category int     `json:"category"`
	Min      float64 `json:"min_weight"`
	Max      float64 `json:"max_weight"`
	Count    int     `json:"count"`
	Avg      float64 `json:"avg_weight"`
}

type Distribution struct {
	Positive []float64 `json:"positive_weights"`
	Negative []float64 `json:"negative_weights"`
	Zero     []float64 `json:"zero_weights"`
}

type WeightAnalysis struct {
	Stats        WeightStats  `json:"weight_stats"`
	Categories   []Category   `json:"weight_categories"`
	Distribution Distribution `json:"weight_distribution"`
}

// Weights summarises raw weights and splits the sorted absolute weights into
// equal-count categories, the last one taking the remainder. No categories
// are formed when there are fewer edges than categories.
func Weights(records []Record, categories int) WeightAnalysis {
	weights := make([]float64, len(records))
	abs := make([]float64, len(records))
	for i, r := range records {
		weights[i] = r.Weight
		abs[i] = r.Abs
	}

	out := WeightAnalysis{
		Categories:   []Category{},
		Distribution: Distribution{Positive: []float64{}, Negative: []float64{}, Zero: []float64{}},
	}
	if len(weights) == 0 {
		return out
	}

	lo, hi := floats.Min(weights), floats.Max(weights)
	out.Stats = WeightStats{
		Count:  len(weights),
		Mean:   analysis.Round(common.Mean(weights), 3),
		Median: analysis.Round(common.Median(weights), 3),
		Min:    analysis.Round(lo, 3),
		Max:    analysis.Round(hi, 3),
		Range:  analysis.Round(hi-lo, 3),
	}
	if len(weights) > 1 {
		sd := analysis.Round(common.StdDev(weights), 3)
		out.Stats.StdDev = &sd
	}

	slices.Sort(abs)
	if categories > 0 && len(abs) >= categories {
		size := len(abs) / categories
		for i := 0; i < categories; i++ {
			end := (i + 1) * size
			if i == categories-1 {
				end = len(abs)
			}
			chunk := abs[i*size : end]
			out.Categories = append(out.Categories, Category{
				Category: i + 1,
				Min:      analysis.Round(chunk[0], 3),
				Max:      analysis.Round(chunk[len(chunk)-1], 3),
				Count:    len(chunk),
				Avg:      analysis.Round(common.Mean(chunk), 3),
			})
		}
	}

	for _, w := range weights {
		switch {
		case w > 0:
			out.Distribution.Positive = append(out.Distribution.Positive, w)
		case w < 0:
			out.Distribution.Negative = append(out.Distribution.Negative, w)
		default:
			out.Distribution.Zero = append(out.Distribution.Zero, w)
		}
	}
	return out
}

// byStrength orders records by absolute weight, strongest first, keeping
// input order among equals.
func byStrength(records []Record) []Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int { return cmp.Compare(b.Abs, a.Abs) })
	return sorted
}
