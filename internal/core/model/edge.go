package model

import "math"

const (
	EdgeTypePositive = "+"
	EdgeTypeNegative = "-"
)

// EdgeRecord is an edge as supplied by a caller. A nil Weight means 1.
type EdgeRecord struct {
	Source string   `json:"source" validate:"required"`
	Target string   `json:"target" validate:"required"`
	Type   string   `json:"type,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

func (e EdgeRecord) WeightOrDefault() float64 {
	if e.Weight == nil {
		return 1
	}
	return *e.Weight
}

// SignedWeight is -|w| for a "-" edge and +|w| for anything else.
func (e EdgeRecord) SignedWeight() float64 {
	w := math.Abs(e.WeightOrDefault())
	if e.Type == EdgeTypeNegative {
		return -w
	}
	return w
}

// Weight is a convenience for building records in code and tests.
func Weight(w float64) *float64 {
	return &w
}
