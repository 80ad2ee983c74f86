package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/google/uuid"
)

// Info is the metadata a host needs to list an analyzer and build a form for it.
type Info struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Version          string      `json:"version"`
	Category         string      `json:"category,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
	SupportsDirected bool        `json:"supports_directed"`
	SupportsWeighted bool        `json:"supports_weighted"`
	MinNodes         int         `json:"min_nodes"`
	MinEdges         int         `json:"min_edges"`
	Parameters       []ParamSpec `json:"parameters"`
}

// Input is one analysis request: the raw graph and the caller's parameters.
type Input struct {
	Nodes  []model.NodeRecord `json:"nodes"`
	Edges  []model.EdgeRecord `json:"edges"`
	Params Params             `json:"parameters,omitempty"`
}

// Analyzer is a pure function of (graph, parameters). Implementations build
// their own graph per call and never return an error: failures are reported
// through Report.Error.
type Analyzer interface {
	Info() Info
	Analyze(in Input) *Report
}

// RunFunc is the body of an analyzer. params has already been resolved against
// the analyzer's ParamSpecs.
type RunFunc func(in Input, params Params) (*Output, error)

// Execute runs fn inside the analyzer boundary: it resolves parameters, checks
// the minimum graph size, fills metadata and converts every failure, panics
// included, into Report.Error with an empty primary result.
func Execute(info Info, in Input, empty func() any, fn RunFunc) (report *Report) {
	start := time.Now()
	params := Resolve(info.Parameters, in.Params)

	report = &Report{
		Metadata: Metadata{
			AnalysisID:     info.ID,
			AnalysisName:   info.Name,
			RunID:          uuid.New().String(),
			Timestamp:      start.UTC(),
			ParametersUsed: params,
			GraphStats: GraphStats{
				Nodes: len(in.Nodes),
				Edges: len(in.Edges),
			},
		},
		Visualizations: []Visualization{},
	}

	defer func() {
		if r := recover(); r != nil {
			fail(report, info, &AnalysisError{Analyzer: info.Name, Err: fmt.Errorf("panic: %v", r)}, empty)
		}
		report.Metadata.ExecutionTimeMs = Round(float64(time.Since(start).Microseconds())/1000, 2)
	}()

	if err := checkSize(info, in); err != nil {
		fail(report, info, err, empty)
		return report
	}

	out, err := fn(in, params)
	if err == nil {
		err = checkEncodable(out)
	}
	if err != nil {
		fail(report, info, err, empty)
		return report
	}

	report.Primary = out.Primary
	report.Secondary = out.Secondary
	if out.Visualizations != nil {
		report.Visualizations = out.Visualizations
	}
	report.Summary = out.Summary
	out.Stats.Nodes = len(in.Nodes)
	out.Stats.Edges = len(in.Edges)
	report.Metadata.GraphStats = out.Stats
	return report
}

func checkSize(info Info, in Input) error {
	minNodes := max(info.MinNodes, 1)
	if len(in.Nodes) < minNodes {
		if minNodes == 1 {
			return NewValidationError("nodes", "Analysis requires at least 1 node")
		}
		return NewValidationError("nodes", "%s requires at least %d nodes", info.Name, minNodes)
	}
	if len(in.Edges) < info.MinEdges {
		if info.MinEdges == 1 {
			return NewValidationError("edges", "%s requires at least 1 edge", info.Name)
		}
		return NewValidationError("edges", "%s requires at least %d edges", info.Name, info.MinEdges)
	}
	return nil
}

// checkEncodable makes sure the output survives JSON encoding, so an overflow
// surfaces as an error instead of an empty response.
func checkEncodable(out *Output) error {
	var unsupported *json.UnsupportedValueError
	for _, v := range []any{out.Primary, out.Secondary, out.Visualizations, out.Stats} {
		_, err := json.Marshal(v)
		switch {
		case errors.As(err, &unsupported):
			return fmt.Errorf("%w: %s", ErrNonFinite, unsupported.Str)
		case err != nil:
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}

func fail(report *Report, info Info, err error, empty func() any) {
	var ve *ValidationError
	var ae *AnalysisError
	if !errors.As(err, &ve) && !errors.As(err, &ae) {
		err = &AnalysisError{Analyzer: info.Name, Err: err}
	}
	report.Error = err.Error()
	report.Invalid = ve != nil
	report.Primary = empty()
	report.Secondary = nil
	report.Visualizations = []Visualization{}
	report.Summary = ""
}
