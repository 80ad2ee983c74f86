package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

var ErrGroupNotFound = errors.New("group not found")

// Source loads a stored group as the plain node and edge lists analyzers take.
type Source struct {
	driver GraphDriver
	logger *zap.Logger
}

func NewSource(driver GraphDriver, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{driver: driver, logger: logger}
}

func (s *Source) LoadGroup(ctx context.Context, groupID string) (model.Graph, error) {
	params := map[string]any{"group_id": groupID}

	nodeRes, err := s.driver.ExecuteQuery(ctx, GetGroupNodesQuery, params)
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to load nodes of group '%s': %w", groupID, err)
	}
	if len(nodeRes.Records) == 0 {
		return model.Graph{}, fmt.Errorf("%w: '%s'", ErrGroupNotFound, groupID)
	}

	nodes := make([]model.NodeRecord, 0, len(nodeRes.Records))
	for _, rec := range nodeRes.Records {
		node, err := nodeRecord(rec)
		if err != nil {
			return model.Graph{}, fmt.Errorf("failed to decode node of group '%s': %w", groupID, err)
		}
		nodes = append(nodes, node)
	}

	edgeRes, err := s.driver.ExecuteQuery(ctx, GetGroupEdgesQuery, params)
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to load edges of group '%s': %w", groupID, err)
	}

	edges := make([]model.EdgeRecord, 0, len(edgeRes.Records))
	for _, rec := range edgeRes.Records {
		edge, err := edgeRecord(rec)
		if err != nil {
			return model.Graph{}, fmt.Errorf("failed to decode edge of group '%s': %w", groupID, err)
		}
		edges = append(edges, edge)
	}

	s.logger.Debug("group loaded",
		zap.String("group_id", groupID),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
	)
	return model.Graph{Nodes: nodes, Edges: edges}, nil
}

func nodeRecord(rec *neo4j.Record) (model.NodeRecord, error) {
	id, err := stringValue(rec, "id")
	if err != nil {
		return model.NodeRecord{}, err
	}
	if id == "" {
		return model.NodeRecord{}, fmt.Errorf("node without uuid")
	}
	label, err := stringValue(rec, "label")
	if err != nil {
		return model.NodeRecord{}, err
	}
	typ, err := stringValue(rec, "type")
	if err != nil {
		return model.NodeRecord{}, err
	}
	group, err := stringValue(rec, "community")
	if err != nil {
		return model.NodeRecord{}, err
	}
	return model.NodeRecord{ID: id, Label: label, Type: typ, Group: group}, nil
}

func edgeRecord(rec *neo4j.Record) (model.EdgeRecord, error) {
	src, err := stringValue(rec, "source")
	if err != nil {
		return model.EdgeRecord{}, err
	}
	dst, err := stringValue(rec, "target")
	if err != nil {
		return model.EdgeRecord{}, err
	}
	typ, err := stringValue(rec, "type")
	if err != nil {
		return model.EdgeRecord{}, err
	}
	weight, err := floatValue(rec, "weight")
	if err != nil {
		return model.EdgeRecord{}, err
	}
	return model.EdgeRecord{Source: src, Target: dst, Type: typ, Weight: weight}, nil
}

// stringValue reads an optional string column. Missing and null both give "".
func stringValue(rec *neo4j.Record, key string) (string, error) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("column '%s': expected string, got %T", key, v)
	}
	return s, nil
}

// floatValue reads an optional numeric column. Null gives nil, which analyzers
// treat as weight 1.
func floatValue(rec *neo4j.Record, key string) (*float64, error) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		return model.Weight(n), nil
	case int64:
		return model.Weight(float64(n)), nil
	}
	return nil, fmt.Errorf("column '%s': expected number, got %T", key, v)
}
