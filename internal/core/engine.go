package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/core/centrality"
	"github.com/agenthands/graphlens/internal/core/community"
	"github.com/agenthands/graphlens/internal/core/edges"
	"github.com/agenthands/graphlens/internal/core/influence"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/agenthands/graphlens/internal/core/paths"
	"github.com/agenthands/graphlens/internal/core/ranking"
	"github.com/agenthands/graphlens/internal/core/stats"
	"github.com/agenthands/graphlens/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoSource      = errors.New("no graph source configured")
	ErrGraphTooLarge = errors.New("graph too large")
)

const influenceID = "influence"

// GraphSource loads a stored group of nodes and edges.
type GraphSource interface {
	LoadGroup(ctx context.Context, groupID string) (model.Graph, error)
}

// Request is one entry of a batch.
type Request struct {
	Analyzer string `json:"analyzer"`
	analysis.Input
}

// BatchResult pairs a batch entry with its report. Error is set only when the
// request never reached an analyzer; analyzer failures live in Report.Error.
type BatchResult struct {
	Analyzer string           `json:"analyzer"`
	Report   *analysis.Report `json:"report,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// DefaultRegistry registers every built-in analyzer.
func DefaultRegistry() (*analysis.Registry, error) {
	return analysis.NewRegistry(
		influence.New(),
		paths.New(),
		centrality.New(),
		ranking.New(),
		community.New(),
		edges.New(),
		stats.New(),
	)
}

type Engine struct {
	registry    *analysis.Registry
	source      GraphSource
	logger      *zap.Logger
	metrics     *metrics.Metrics
	concurrency int
	maxNodes    int
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithSource(source GraphSource) Option {
	return func(e *Engine) { e.source = source }
}

// WithConcurrency bounds how many batch entries run at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithMaxNodes rejects graphs with more nodes than n. Zero means no limit.
func WithMaxNodes(n int) Option {
	return func(e *Engine) { e.maxNodes = n }
}

func NewEngine(registry *analysis.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:    registry,
		logger:      zap.NewNop(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Analyzers() []analysis.Info {
	return e.registry.List()
}

func (e *Engine) Info(id string) (analysis.Info, error) {
	a, err := e.registry.Lookup(id)
	if err != nil {
		return analysis.Info{}, err
	}
	return a.Info(), nil
}

// HasSource reports whether stored groups can be analyzed.
func (e *Engine) HasSource() bool {
	return e.source != nil
}

// Run executes one analyzer. The returned error covers only what prevents the
// analyzer from being called at all; analyzer failures come back in the
// report.
func (e *Engine) Run(ctx context.Context, id string, in analysis.Input) (*analysis.Report, error) {
	a, err := e.registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	if err := e.admit(ctx, in); err != nil {
		return nil, err
	}

	done := e.metrics.StartRun(id, len(in.Nodes))
	report := a.Analyze(in)
	done(report.Failed())

	fields := []zap.Field{
		zap.String("analyzer", id),
		zap.String("run_id", report.Metadata.RunID),
		zap.Int("nodes", len(in.Nodes)),
		zap.Int("edges", len(in.Edges)),
		zap.Float64("execution_ms", report.Metadata.ExecutionTimeMs),
	}
	if report.Failed() {
		e.logger.Warn("analysis failed", append(fields, zap.String("error", report.Error))...)
	} else {
		e.logger.Info("analysis completed", fields...)
	}
	return report, nil
}

// RunBatch runs independent requests with bounded concurrency. Results keep
// the order of reqs. Only cancellation of ctx fails the whole batch.
func (e *Engine) RunBatch(ctx context.Context, reqs []Request) ([]BatchResult, error) {
	results := make([]BatchResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Analyzer = req.Analyzer
			report, err := e.Run(gctx, req.Analyzer, req.Input)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				results[i].Error = err.Error()
				return nil
			}
			results[i].Report = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}
	return results, nil
}

// RunStored loads groupID from the configured source and analyzes it.
func (e *Engine) RunStored(ctx context.Context, groupID, id string, params analysis.Params) (*analysis.Report, error) {
	if e.source == nil {
		return nil, ErrNoSource
	}
	if _, err := e.registry.Lookup(id); err != nil {
		return nil, err
	}

	g, err := e.source.LoadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("stored group loaded", zap.String("group_id", groupID), zap.Int("nodes", len(g.Nodes)))

	return e.Run(ctx, id, analysis.Input{Nodes: g.Nodes, Edges: g.Edges, Params: params})
}

// Influence runs the minimal influence contract.
func (e *Engine) Influence(ctx context.Context, in analysis.Input) (influence.Result, error) {
	if err := e.admit(ctx, in); err != nil {
		return influence.Result{}, err
	}

	done := e.metrics.StartRun(influenceID, len(in.Nodes))
	res := influence.AnalyzeGraph(in.Nodes, in.Edges, in.Params)
	done(res.Error != "")

	if res.Error != "" {
		e.logger.Warn("influence failed", zap.Int("nodes", len(in.Nodes)), zap.String("error", res.Error))
	} else {
		e.logger.Info("influence completed",
			zap.Int("nodes", len(in.Nodes)),
			zap.Int("positive_paths", len(res.PositivePaths)),
			zap.Int("negative_paths", len(res.NegativePaths)),
		)
	}
	return res, nil
}

func (e *Engine) admit(ctx context.Context, in analysis.Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.maxNodes > 0 && len(in.Nodes) > e.maxNodes {
		return fmt.Errorf("%w: %d nodes exceeds the limit of %d", ErrGraphTooLarge, len(in.Nodes), e.maxNodes)
	}
	return nil
}
