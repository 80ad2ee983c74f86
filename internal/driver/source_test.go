package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDriver struct {
	results map[string]neo4j.EagerResult
	params  []map[string]any
	err     error
}

func (m *mockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.params = append(m.params, params)
	if m.err != nil {
		return neo4j.EagerResult{}, m.err
	}
	return m.results[query], nil
}

func (m *mockDriver) Close(ctx context.Context) error {
	return nil
}

func records(keys []string, rows ...[]any) neo4j.EagerResult {
	res := neo4j.EagerResult{Keys: keys}
	for _, row := range rows {
		res.Records = append(res.Records, &neo4j.Record{Keys: keys, Values: row})
	}
	return res
}

var (
	nodeKeys = []string{"id", "label", "type", "community"}
	edgeKeys = []string{"source", "target", "type", "weight"}
)

func TestLoadGroup(t *testing.T) {
	d := &mockDriver{results: map[string]neo4j.EagerResult{
		GetGroupNodesQuery: records(nodeKeys,
			[]any{"n1", "Rain", "cause", nil},
			[]any{"n2", "Flood", nil, "weather"},
			[]any{"n3", nil, nil, nil},
		),
		GetGroupEdgesQuery: records(edgeKeys,
			[]any{"n1", "n2", "+", 0.8},
			[]any{"n2", "n3", "-", int64(2)},
			[]any{"n1", "n3", nil, nil},
		),
	}}

	g, err := NewSource(d, nil).LoadGroup(context.Background(), "g-1")
	require.NoError(t, err)

	assert.Equal(t, []model.NodeRecord{
		{ID: "n1", Label: "Rain", Type: "cause"},
		{ID: "n2", Label: "Flood", Group: "weather"},
		{ID: "n3"},
	}, g.Nodes)
	assert.Equal(t, []model.EdgeRecord{
		{Source: "n1", Target: "n2", Type: "+", Weight: model.Weight(0.8)},
		{Source: "n2", Target: "n3", Type: "-", Weight: model.Weight(2)},
		{Source: "n1", Target: "n3"},
	}, g.Edges)

	require.Len(t, d.params, 2)
	assert.Equal(t, "g-1", d.params[0]["group_id"])
}

func TestLoadGroup_NotFound(t *testing.T) {
	d := &mockDriver{results: map[string]neo4j.EagerResult{}}

	_, err := NewSource(d, nil).LoadGroup(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.Len(t, d.params, 1)
}

func TestLoadGroup_DriverError(t *testing.T) {
	boom := errors.New("connection refused")
	d := &mockDriver{err: boom}

	_, err := NewSource(d, nil).LoadGroup(context.Background(), "g-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load nodes of group 'g-1'")
}

func TestLoadGroup_BadColumns(t *testing.T) {
	tests := []struct {
		name  string
		nodes neo4j.EagerResult
		edges neo4j.EagerResult
		want  string
	}{
		{
			name:  "node id missing",
			nodes: records(nodeKeys, []any{nil, "A", nil, nil}),
			want:  "node without uuid",
		},
		{
			name:  "label not a string",
			nodes: records(nodeKeys, []any{"a", int64(3), nil, nil}),
			want:  "column 'label': expected string, got int64",
		},
		{
			name:  "weight not a number",
			nodes: records(nodeKeys, []any{"a", "A", nil, nil}),
			edges: records(edgeKeys, []any{"a", "a", "+", "heavy"}),
			want:  "column 'weight': expected number, got string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &mockDriver{results: map[string]neo4j.EagerResult{
				GetGroupNodesQuery: tt.nodes,
				GetGroupEdgesQuery: tt.edges,
			}}
			_, err := NewSource(d, nil).LoadGroup(context.Background(), "g")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
