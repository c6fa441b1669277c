// Package testinfra starts disposable databases for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultPostgresImage = "postgres:17-alpine"
	PostgresUser         = "appgen"
	PostgresPassword     = "appgen"
	PostgresDB           = "appgen"

	// EnvPostgresImage overrides DefaultPostgresImage.
	EnvPostgresImage = "APPGEN_TEST_POSTGRES_IMAGE"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// PostgresImage returns the image used by StartPostgres.
func PostgresImage() string {
	if img := os.Getenv(EnvPostgresImage); img != "" {
		return img
	}
	return DefaultPostgresImage
}

// StartPostgres runs a PostgreSQL container and waits until it accepts
// connections. The caller terminates it.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	ctr, err := postgres.Run(ctx,
		PostgresImage(),
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

// ADONETConnString returns the container address as an ADO.NET style
// connection string.
func (c *PostgresContainer) ADONETConnString(ctx context.Context) (string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get host: %w", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return "", fmt.Errorf("get port: %w", err)
	}
	return fmt.Sprintf("Host=%s;Port=%s;Database=%s;Username=%s;Password=%s;SSL Mode=Disable",
		host, port.Port(), PostgresDB, PostgresUser, PostgresPassword), nil
}
