// Package ranking orders nodes by an importance score and splits the top of
// the ranking into tiers.
package ranking

import (
	"math"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/centrality"
)

type Tier struct {
	Tier     int                 `json:"tier"`
	Nodes    []centrality.Ranked `json:"nodes"`
	Count    int                 `json:"count"`
	AvgScore float64             `json:"avg_score"`
	MinScore float64             `json:"min_score"`
	MaxScore float64             `json:"max_score"`
}

// SelectCount is how many of total ranked nodes fall inside topPercent,
// never fewer than one.
func SelectCount(total int, topPercent float64) int {
	return max(1, int(float64(total)*topPercent/100))
}

// Split partitions ranked (best first) into count contiguous tiers of equal
// size; the last tier takes the remainder and empty tiers are dropped. Tier
// numbers start at 1 and keep their position even when an earlier tier is
// dropped.
func Split(ranked []centrality.Ranked, count int) []Tier {
	tiers := []Tier{}
	if len(ranked) == 0 || count <= 0 {
		return tiers
	}
	size := max(1, len(ranked)/count)
	for i := range count {
		start := min(i*size, len(ranked))
		end := min((i+1)*size, len(ranked))
		if i == count-1 {
			end = len(ranked)
		}
		members := ranked[start:end]
		if len(members) == 0 {
			continue
		}

		sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
		for _, r := range members {
			sum += r.Score
			lo = min(lo, r.Score)
			hi = max(hi, r.Score)
		}
		tiers = append(tiers, Tier{
			Tier:     i + 1,
			Nodes:    members,
			Count:    len(members),
			AvgScore: analysis.Round(sum/float64(len(members)), 4),
			MinScore: analysis.Round(lo, 4),
			MaxScore: analysis.Round(hi, 4),
		})
	}
	return tiers
}

type Stats struct {
	TotalNodes   int     `json:"total_nodes"`
	MeanScore    float64 `json:"mean_score"`
	MaxScore     float64 `json:"max_score"`
	MinScore     float64 `json:"min_score"`
	ScoreRange   float64 `json:"score_range"`
	StdDeviation float64 `json:"std_deviation"`
	TiersCreated int     `json:"tiers_created"`
}

// Describe summarises the score distribution. The deviation is the
// population one, taken around the rounded mean.
func Describe(ranked []centrality.Ranked, tiers int) Stats {
	if len(ranked) == 0 {
		return Stats{TiersCreated: tiers}
	}
	sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
	for _, r := range ranked {
		sum += r.Score
		lo = min(lo, r.Score)
		hi = max(hi, r.Score)
	}
	n := float64(len(ranked))
	mean := analysis.Round(sum/n, 4)
	variance := 0.0
	for _, r := range ranked {
		variance += (r.Score - mean) * (r.Score - mean)
	}
	return Stats{
		TotalNodes:   len(ranked),
		MeanScore:    mean,
		MaxScore:     analysis.Round(hi, 4),
		MinScore:     analysis.Round(lo, 4),
		ScoreRange:   analysis.Round(hi-lo, 4),
		StdDeviation: analysis.Round(math.Sqrt(variance/n), 4),
		TiersCreated: tiers,
	}
}
