package database

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/config"
)

// NewNeo4jDriver creates a driver and verifies the server is reachable.
func NewNeo4jDriver(ctx context.Context, cfg *config.Config, log zerolog.Logger) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
		func(c *neo4jconfig.Config) {
			// Node writers plus the edge session and concurrent readers.
			c.MaxConnectionPoolSize = max(cfg.NodeWriters*2, 16)
			c.ConnectionAcquisitionTimeout = 30 * time.Second
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewConnectivityError(cfg.Neo4jURI, err)
	}

	log.Info().
		Str("uri", cfg.Neo4jURI).
		Str("database", cfg.Neo4jDatabase).
		Msg("Neo4j connected")

	return driver, nil
}
