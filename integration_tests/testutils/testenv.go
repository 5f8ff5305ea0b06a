//go:build integration

package testutils

import (
	"context"
	"fmt"
	"log"

	"github.com/Black-And-White-Club/irock/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds the containers and connections shared by a package.
type TestEnvironment struct {
	PgContainer   *postgres.PostgresContainer
	NatsContainer *nats.NATSContainer
	DSN           string
	NatsURL       string
	DB            *bun.DB
}

// NewTestEnvironment starts Postgres and NATS and migrates the database.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	env := &TestEnvironment{}

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}
	env.PgContainer = pgContainer
	env.DSN = dsn

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup(ctx)
		return nil, err
	}
	env.NatsContainer = natsContainer
	env.NatsURL = natsURL

	env.DB = OpenDB(dsn)
	if err := RunMigrations(ctx, env.DB, dsn); err != nil {
		env.Cleanup(ctx)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return env, nil
}

// Cleanup closes connections and terminates the containers.
func (env *TestEnvironment) Cleanup(ctx context.Context) {
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate postgres container: %v", err)
		}
	}
}
