// Package influence scores how strongly each node is pushed by its incoming
// signed edges and enumerates the consistent causal chains between two nodes.
package influence

import (
	"fmt"
	"math"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/graph"
	"github.com/agenthands/graphlens/internal/core/model"
)

type Polarity int

const (
	Mixed Polarity = iota
	Positive
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "mixed"
}

// Scores sums the signed weight of every incoming edge per node, keyed by
// label. When labels repeat, the node listed last owns the entry. g must be
// built with graph.Signed.
func Scores(g *graph.Graph) map[string]float64 {
	sums := make([]float64, g.NodeCount())
	for _, e := range g.Edges() {
		sums[e.To] += e.Weight
	}
	scores := make(map[string]float64, g.NodeCount())
	for i, sum := range sums {
		scores[g.Label(i)] = sum
	}
	return scores
}

// Classify decides the polarity of a path. With strict set, an edge counts as
// positive only if its signed weight is > 0 and negative only if it is < 0, so
// a zero-weight edge makes the whole path mixed. Otherwise the declared type
// decides: "+" or no type is positive, "-" is negative.
func Classify(g *graph.Graph, path []int, strict bool) Polarity {
	allPos, allNeg := true, true
	for i := 0; i+1 < len(path); i++ {
		e := g.MustEdge(path[i], path[i+1])
		var pos, neg bool
		if strict {
			pos, neg = e.Weight > 0, e.Weight < 0
		} else {
			pos = e.Type == model.EdgeTypePositive || e.Type == ""
			neg = e.Type == model.EdgeTypeNegative
		}
		allPos = allPos && pos
		allNeg = allNeg && neg
	}
	switch {
	case allPos:
		return Positive
	case allNeg:
		return Negative
	}
	return Mixed
}

// Result is the minimal influence contract.
type Result struct {
	InfluenceScores map[string]float64 `json:"influence_scores"`
	PositivePaths   [][]string         `json:"positive_paths"`
	NegativePaths   [][]string         `json:"negative_paths"`
	Error           string             `json:"error"`
}

func emptyResult() Result {
	return Result{
		InfluenceScores: map[string]float64{},
		PositivePaths:   [][]string{},
		NegativePaths:   [][]string{},
	}
}

// AnalyzeGraph computes exact influence scores and the strictly positive and
// strictly negative simple paths from the first node to the last (or from
// params["source_node"] to params["target_node"] when those name real nodes).
// Mixed paths are dropped. When no edge carries a positive signed weight no
// path is reported at all. Failures never escape: they come back in Error with
// every collection empty.
func AnalyzeGraph(nodes []model.NodeRecord, edges []model.EdgeRecord, params analysis.Params) (res Result) {
	res = emptyResult()
	defer func() {
		if r := recover(); r != nil {
			res = emptyResult()
			res.Error = (&analysis.AnalysisError{Analyzer: "influence", Err: fmt.Errorf("panic: %v", r)}).Error()
		}
	}()

	g, err := graph.Build(nodes, edges, graph.Options{Directed: true, Weight: graph.Signed})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	scores := Scores(g)
	for i := range g.NodeCount() {
		label := g.Label(i)
		if score := scores[label]; math.IsInf(score, 0) || math.IsNaN(score) {
			res.Error = (&analysis.AnalysisError{Analyzer: "influence", Err: fmt.Errorf("%w: score of %s", analysis.ErrNonFinite, label)}).Error()
			return res
		}
	}
	res.InfluenceScores = scores

	if len(nodes) < 2 || !hasPositiveEdge(g) {
		return res
	}
	first, last := g.FirstLast(nodes)
	src := g.Endpoint(params.String("source_node"), first)
	dst := g.Endpoint(params.String("target_node"), last)
	if src == dst || g.HopDistances(src)[dst] < 0 {
		return res
	}

	g.SimplePaths(src, dst, g.NodeCount(), func(path []int) bool {
		switch Classify(g, path, true) {
		case Positive:
			res.PositivePaths = append(res.PositivePaths, g.Labels(path))
		case Negative:
			res.NegativePaths = append(res.NegativePaths, g.Labels(path))
		}
		return true
	})
	return res
}

func hasPositiveEdge(g *graph.Graph) bool {
	for _, e := range g.Edges() {
		if e.Weight > 0 {
			return true
		}
	}
	return false
}
