package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/agenthands/graphlens/internal/config"
	"github.com/agenthands/graphlens/internal/core"
	"github.com/agenthands/graphlens/internal/core/common"
	"github.com/agenthands/graphlens/internal/core/model"
	"github.com/agenthands/graphlens/internal/driver"
	"github.com/agenthands/graphlens/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "graphlens",
	Short: "Analyze graphs from the command line",
	Long: `graphlens runs the built-in graph analyzers (paths, centrality, ranking,
communities, edge weights and basic statistics) on a JSON graph file or on a
group stored in Memgraph, and prints the report as JSON.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log analyzer runs to stderr")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine builds an engine from config. The returned cleanup closes the
// Memgraph connection when withStore opened one.
func newEngine(ctx context.Context, withStore bool) (*core.Engine, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := zap.NewNop()
	if verbose {
		cfg.Log.Format = "console"
		if logger, err = logging.New(cfg.Log); err != nil {
			return nil, nil, err
		}
	}

	registry, err := core.DefaultRegistry()
	if err != nil {
		return nil, nil, err
	}

	opts := []core.Option{
		core.WithLogger(logger),
		core.WithMaxNodes(cfg.Analysis.MaxNodes),
		core.WithConcurrency(cfg.Analysis.BatchConcurrency),
	}
	cleanup := func() { _ = logger.Sync() }

	if withStore {
		if cfg.Memgraph.URI == "" {
			return nil, nil, fmt.Errorf("--group needs memgraph.uri or MEMGRAPH_URI")
		}
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph, logger)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, core.WithSource(driver.NewSource(d, logger)))
		cleanup = func() {
			_ = d.Close(context.Background())
			_ = logger.Sync()
		}
	}

	return core.NewEngine(registry, opts...), cleanup, nil
}

// readGraph decodes a graph file; "-" reads stdin.
func readGraph(cmd *cobra.Command, path string) (model.Graph, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to read graph '%s': %w", path, err)
	}

	g, err := common.DecodeJSON[model.Graph](data)
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to decode graph '%s': %w", path, err)
	}
	return g, nil
}

func writeJSON(cmd *cobra.Command, v any, pretty bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
