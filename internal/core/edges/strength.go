package edges

import "github.com/agenthands/graphlens/internal/core/analysis"

const strengthTop = 5

type StrengthAnalysis struct {
	Strongest  []WeightedEdge      `json:"strongest_edges"`
	Weakest    []WeightedEdge      `json:"weakest_edges"`
	Importance map[string]float64 `json:"edge_importance"`
}

// Strength lists the strongest and weakest edges by absolute weight. An
// edge's importance is its absolute weight.
func Strength(records []Record) StrengthAnalysis {
	sorted := byStrength(records)
	out := StrengthAnalysis{
		Strongest:  describe(sorted[:min(strengthTop, len(sorted))]),
		Weakest:    describe(sorted[max(0, len(sorted)-strengthTop):]),
		Importance: make(map[string]float64, len(records)),
	}
	for _, r := range records {
		out.Importance[r.Key] = analysis.Round(r.Abs, 3)
	}
	return out
}

func describe(records []Record) []WeightedEdge {
	out := make([]WeightedEdge, len(records))
	for i, r := range records {
		out[i] = WeightedEdge{Edge: r.Key, Weight: r.Weight}
	}
	return out
}
