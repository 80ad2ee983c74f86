package centrality

import (
	"cmp"
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
)

// Ranked is a node and its score, used wherever order matters.
type Ranked struct {
	Node  string  `json:"node"`
	Score float64 `json:"score"`
}

// Composite is the per-node mean across measures. A measure with no value for
// a node contributes 0 rather than being skipped.
func Composite(labels []string, measures []map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(labels))
	if len(measures) == 0 {
		return out
	}
	for _, label := range labels {
		sum := 0.0
		for _, m := range measures {
			sum += m[label]
		}
		out[label] = analysis.Round(sum/float64(len(measures)), 4)
	}
	return out
}

// Rank orders labels by descending score, keeping label order on ties.
func Rank(labels []string, scores map[string]float64) []Ranked {
	ranked := make([]Ranked, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		if s, ok := scores[l]; ok {
			ranked = append(ranked, Ranked{Node: l, Score: s})
		}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}

func Top(labels []string, scores map[string]float64, k int) []Ranked {
	ranked := Rank(labels, scores)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// CriticalNodes flags the top quarter of nodes by betweenness (at least one),
// including every node tied with the last one in, and keeps only strictly
// positive scores.
func CriticalNodes(labels []string, betweenness map[string]float64) []string {
	ranked := Rank(labels, betweenness)
	critical := []string{}
	if len(ranked) == 0 {
		return critical
	}
	cutoff := ranked[max(1, len(ranked)/4)-1].Score
	for _, r := range ranked {
		if r.Score < cutoff {
			break
		}
		if r.Score > 0 {
			critical = append(critical, r.Node)
		}
	}
	return critical
}
