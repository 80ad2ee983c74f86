package edges

import (
	"slices"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/common"
	"github.com/agenthands/graphlens/internal/core/model"
)

// WeightedEdge is an edge key with its raw weight.
type WeightedEdge struct {
	Edge   string  `json:"edge"`
	Weight float64 `json:"weight"`
}

type RelationshipSummary struct {
	TotalEdges          int      `json:"total_edges"`
	PositiveCount       int      `json:"positive_count"`
	NegativeCount       int      `json:"negative_count"`
	NeutralCount        int      `json:"neutral_count"`
	PositivePercentage  float64  `json:"positive_percentage"`
	NegativePercentage  float64  `json:"negative_percentage"`
	AvgPositiveStrength *float64 `json:"avg_positive_strength,omitempty"`
	MaxPositiveStrength *float64 `json:"max_positive_strength,omitempty"`
	AvgNegativeStrength *float64 `json:"avg_negative_strength,omitempty"`
	MaxNegativeStrength *float64 `json:"max_negative_strength,omitempty"`
}

type RelationshipDetails struct {
	Positive []WeightedEdge `json:"positive_edges"`
	Negative []WeightedEdge `json:"negative_edges"`
}

type RelationshipAnalysis struct {
	Summary RelationshipSummary `json:"relationship_summary"`
	Details RelationshipDetails `json:"relationship_details"`
}

// Relationships counts edges by polarity. Types other than "+" and "-" are
// neutral.
func Relationships(records []Record) RelationshipAnalysis {
	out := RelationshipAnalysis{
		Summary: RelationshipSummary{TotalEdges: len(records)},
		Details: RelationshipDetails{Positive: []WeightedEdge{}, Negative: []WeightedEdge{}},
	}
	var pos, neg []float64
	for _, r := range records {
		switch r.Type {
		case model.EdgeTypePositive:
			pos = append(pos, r.Abs)
			out.Details.Positive = append(out.Details.Positive, WeightedEdge{Edge: r.Key, Weight: r.Weight})
		case model.EdgeTypeNegative:
			neg = append(neg, r.Abs)
			out.Details.Negative = append(out.Details.Negative, WeightedEdge{Edge: r.Key, Weight: r.Weight})
		default:
			out.Summary.NeutralCount++
		}
	}
	s := &out.Summary
	s.PositiveCount = len(pos)
	s.NegativeCount = len(neg)
	if len(records) > 0 {
		s.PositivePercentage = analysis.Round(float64(len(pos))/float64(len(records))*100, 1)
		s.NegativePercentage = analysis.Round(float64(len(neg))/float64(len(records))*100, 1)
	}
	if len(pos) > 0 {
		s.AvgPositiveStrength = rounded(common.Mean(pos))
		s.MaxPositiveStrength = rounded(slices.Max(pos))
	}
	if len(neg) > 0 {
		s.AvgNegativeStrength = rounded(common.Mean(neg))
		s.MaxNegativeStrength = rounded(slices.Max(neg))
	}
	return out
}

func rounded(x float64) *float64 {
	r := analysis.Round(x, 3)
	return &r
}
