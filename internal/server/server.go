package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/agenthands/graphlens/internal/core"
	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/agenthands/graphlens/internal/driver"
	"github.com/agenthands/graphlens/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	Engine   *core.Engine
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewServer wires the HTTP layer to an engine. A nil gatherer leaves /metrics
// unrouted.
func NewServer(engine *core.Engine, logger *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Engine:   engine,
		Logger:   logger,
		Metrics:  m,
		Gatherer: gatherer,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.Health)

	r.GET("/analyses", s.ListAnalyses)
	r.GET("/analyses/:id", s.GetAnalysis)
	r.POST("/analyses/batch", s.RunBatch)
	r.POST("/analyses/:id", s.RunAnalysis)
	r.POST("/groups/:group/analyses/:id", s.RunStored)
	r.POST("/influence", s.Influence)

	if s.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

// statusFor maps an error that kept a request from reaching an analyzer to
// an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrUnknownAnalyzer), errors.Is(err, driver.ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrGraphTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrNoSource):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// reportStatus is 200 for a successful report, 422 when the input was
// rejected and 500 when the computation itself failed.
func reportStatus(report *analysis.Report) int {
	switch {
	case !report.Failed():
		return http.StatusOK
	case report.Invalid:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
