package driver

import (
	"context"
	"fmt"

	"github.com/agenthands/graphlens/internal/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type MemgraphDriver struct {
	Driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

func NewMemgraphDriver(ctx context.Context, cfg config.MemgraphConfig, logger *zap.Logger) (*MemgraphDriver, error) {
	auth := neo4j.NoAuth()
	if cfg.User != "" {
		auth = neo4j.BasicAuth(cfg.User, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create memgraph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to memgraph at '%s': %w", cfg.URI, err)
	}

	logger.Info("connected to memgraph", zap.String("uri", cfg.URI))
	return &MemgraphDriver{Driver: driver, database: cfg.Database, logger: logger}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

// ExecuteQuery runs query with reader routing; the service never writes.
func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{neo4j.ExecuteQueryWithReadersRouting()}
	if d.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.database))
	}

	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	d.logger.Debug("query executed", zap.Int("records", len(result.Records)))
	return *result, nil
}
