package ranking

import (
	"fmt"

	"github.com/agenthands/graphlens/internal/core/centrality"
	"github.com/agenthands/graphlens/internal/core/graph"
)

const (
	MethodComposite   = "composite"
	MethodDegree      = "degree"
	MethodBetweenness = "betweenness"
	MethodCloseness   = "closeness"
	MethodPageRank    = "pagerank"
	MethodClustering  = "clustering"
)

// compositeWeights blend four measures into one importance score.
var compositeWeights = []struct {
	measure string
	weight  float64
}{
	{centrality.MeasureDegree, 0.3},
	{centrality.MeasureBetweenness, 0.3},
	{centrality.MeasureCloseness, 0.2},
	{centrality.MeasurePageRank, 0.2},
}

func measure(g *graph.Graph, name string) (centrality.Scores, error) {
	chain, err := centrality.Chain(name, true)
	if err != nil {
		return nil, err
	}
	outcome, err := centrality.Resolve(g, chain)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s: %w", name, err)
	}
	return outcome.Scores, nil
}

// Importance scores every node with the given method. Unknown methods fall
// back to degree centrality.
func Importance(g *graph.Graph, method string) (centrality.Scores, error) {
	switch method {
	case MethodBetweenness, MethodCloseness, MethodPageRank:
		return measure(g, method)
	case MethodClustering:
		return centrality.Clustering(g, graph.Weighted), nil
	case MethodComposite:
		combined := make(centrality.Scores, g.NodeCount())
		for _, cw := range compositeWeights {
			scores, err := measure(g, cw.measure)
			if err != nil {
				return nil, err
			}
			for i, s := range scores {
				combined[i] += s * cw.weight
			}
		}
		return combined, nil
	}
	return centrality.Degree(g), nil
}
