package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/agenthands/graphlens/internal/core"
	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BatchRequest struct {
	Requests []core.Request `json:"requests" binding:"required,min=1"`
}

type StoredRequest struct {
	Parameters analysis.Params `json:"parameters"`
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"analyzers": len(s.Engine.Analyzers()),
		"source":    s.Engine.HasSource(),
	})
}

func (s *Server) ListAnalyses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"analyses": s.Engine.Analyzers()})
}

func (s *Server) GetAnalysis(c *gin.Context) {
	info, err := s.Engine.Info(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) RunAnalysis(c *gin.Context) {
	var in analysis.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	report, err := s.Engine.Run(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, reportStatus(report), report)
}

func (s *Server) RunBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	results, err := s.Engine.RunBatch(c.Request.Context(), req.Requests)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, gin.H{"results": results})
}

// RunStored analyzes a group held in the graph store. The body is optional.
func (s *Server) RunStored(c *gin.Context) {
	var req StoredRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	report, err := s.Engine.RunStored(c.Request.Context(), c.Param("group"), c.Param("id"), req.Parameters)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, reportStatus(report), report)
}

// Influence serves the minimal influence contract. Failures are carried in
// the body's error field with a 200, like the analyzer itself reports them.
func (s *Server) Influence(c *gin.Context) {
	var in analysis.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	res, err := s.Engine.Influence(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, res)
}

// respond encodes v before the status goes out, so a result JSON cannot carry
// becomes a 500 rather than an empty 200.
func (s *Server) respond(c *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.fail(c, &analysis.AnalysisError{Err: err})
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
