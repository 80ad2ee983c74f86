package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agenthands/graphlens/internal/core/analysis"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signedGraph = `{
	"nodes": [{"id": "rain", "label": "Rain"}, {"id": "flood", "label": "Flood"}, {"id": "crops", "label": "Crops"}],
	"edges": [
		{"source": "rain", "target": "flood", "type": "+", "weight": 0.9},
		{"source": "flood", "target": "crops", "type": "-", "weight": 0.7},
		{"source": "rain", "target": "crops", "type": "+", "weight": 0.4}
	]
}`

// executeCommand runs the root command with args and returns what it wrote to
// stdout; stderr is discarded.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(signedGraph))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	configPath, verbose = "", false
	listJSON = false
	runGraph, runGroup, runParams, runPretty = "", "", nil, false
	influenceGraph, influenceSource, influenceTarget, influencePretty = "", "", "", false

	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)
}

func writeGraph(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "graphlens", rootCmd.Use)

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"list", "run", "influence"} {
		assert.Contains(t, names, want)
	}
}

func TestList(t *testing.T) {
	out, err := executeCommand(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, out, "community-detection")
	assert.Contains(t, out, "Basic Graph Statistics")

	out, err = executeCommand(t, "list", "--json")
	require.NoError(t, err)
	var infos []analysis.Info
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Len(t, infos, 7)
}

func TestRun(t *testing.T) {
	path := writeGraph(t, signedGraph)

	out, err := executeCommand(t, "run", "path-analysis", "--graph", path,
		"--param", "analysis_type=shortest_only", "--param", "target_node=crops", "--pretty")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "", report["error"])
	assert.Contains(t, out, "\n  \"metadata\"")

	primary := report["primary"].(map[string]any)
	assert.Equal(t, []any{"Rain", "Crops"}, primary["shortest_path"])
	used := report["metadata"].(map[string]any)["parameters_used"].(map[string]any)
	assert.Equal(t, "shortest_only", used["analysis_type"])
}

func TestRun_Stdin(t *testing.T) {
	out, err := executeCommand(t, "run", "basic-statistics", "--graph", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"analysis_id":"basic-statistics"`)
}

func TestRun_Errors(t *testing.T) {
	path := writeGraph(t, signedGraph)

	_, err := executeCommand(t, "run", "nope", "--graph", path)
	assert.ErrorIs(t, err, analysis.ErrUnknownAnalyzer)

	_, err = executeCommand(t, "run", "path-analysis")
	assert.Error(t, err)

	_, err = executeCommand(t, "run", "path-analysis", "--graph", path, "--param", "=3")
	assert.EqualError(t, err, "invalid parameter '=3': expected key=value")

	_, err = executeCommand(t, "run", "path-analysis", "--graph", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read graph")

	bad := writeGraph(t, `{"nodes": [{"id": "a"}], "edges": [{"source": "a", "target": "b"}]}`)
	out, err := executeCommand(t, "run", "basic-statistics", "--graph", bad)
	assert.EqualError(t, err, "Edge target 'b' not found in nodes")
	assert.Contains(t, out, `"error":"Edge target 'b' not found in nodes"`)
}

func TestInfluenceCommand(t *testing.T) {
	path := writeGraph(t, signedGraph)

	out, err := executeCommand(t, "influence", "--graph", path)
	require.NoError(t, err)

	var res struct {
		Scores   map[string]float64 `json:"influence_scores"`
		Positive [][]string         `json:"positive_paths"`
		Negative [][]string         `json:"negative_paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Scores, 3)
	assert.Equal(t, [][]string{{"Rain", "Crops"}}, res.Positive)
	assert.Empty(t, res.Negative)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{
		"algorithm=louvain",
		"resolution=1.5",
		"show_modularity=false",
		"centrality_types=[\"degree\",\"pagerank\"]",
		"label=a=b",
	})
	require.NoError(t, err)

	assert.Equal(t, analysis.Params{
		"algorithm":        "louvain",
		"resolution":       1.5,
		"show_modularity":  false,
		"centrality_types": []any{"degree", "pagerank"},
		"label":            "a=b",
	}, params)

	_, err = parseParams([]string{"novalue"})
	assert.Error(t, err)
}
