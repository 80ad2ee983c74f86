package stats

import (
	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/common"
	"github.com/agenthands/graphlens/internal/core/graph"
)

// DegreeFrequency is one histogram bar.
type DegreeFrequency struct {
	Degree int `json:"degree"`
	Count  int `json:"count"`
}

type DegreeStats struct {
	Distribution     map[int]int     `json:"degree_distribution"`
	UniqueDegrees    int             `json:"unique_degrees"`
	MostCommonDegree DegreeFrequency `json:"most_common_degree"`
	Entropy          float64         `json:"degree_entropy"`
	MinDegree        int             `json:"min_degree"`
	MaxDegree        int             `json:"max_degree"`
	MedianDegree     float64         `json:"median_degree"`
	StdDev           float64         `json:"degree_std_dev"`
}

// DegreeDistribution builds the degree histogram. The most common degree is
// the first one, in node order, to reach the highest count.
func DegreeDistribution(g *graph.Graph) DegreeStats {
	degrees := Degrees(g)
	s := DegreeStats{Distribution: make(map[int]int)}
	if len(degrees) == 0 {
		return s
	}

	var order []int
	for _, d := range degrees {
		if _, ok := s.Distribution[d]; !ok {
			order = append(order, d)
		}
		s.Distribution[d]++
	}
	counts := make([]int, len(order))
	for i, d := range order {
		counts[i] = s.Distribution[d]
		if counts[i] > s.MostCommonDegree.Count {
			s.MostCommonDegree = DegreeFrequency{Degree: d, Count: counts[i]}
		}
	}

	s.UniqueDegrees = len(order)
	s.Entropy = analysis.Round(common.Entropy(counts), 4)
	s.MinDegree, s.MaxDegree = degrees[0], degrees[0]
	for _, d := range degrees {
		s.MinDegree = min(s.MinDegree, d)
		s.MaxDegree = max(s.MaxDegree, d)
	}
	s.MedianDegree = common.Median(degrees)
	s.StdDev = analysis.Round(common.StdDev(degrees), 3)
	return s
}
