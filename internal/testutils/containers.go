// Package testutils starts throwaway Postgres and NATS containers and
// generates fixtures for integration tests.
package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// IntegrationEnv enables the container-backed tests.
const IntegrationEnv = "PRODE_INTEGRATION"

// RequireIntegration skips the test unless PRODE_INTEGRATION=1.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv(IntegrationEnv) != "1" {
		t.Skipf("set %s=1 to run integration tests", IntegrationEnv)
	}
}

// StartPostgres runs a Postgres container for the lifetime of t and returns its DSN.
func StartPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("prode"),
		postgres.WithUsername("prode"),
		postgres.WithPassword("prode"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, pg)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	return dsn
}

// StartNATS runs a JetStream-enabled NATS container for the lifetime of t
// and returns its URL.
func StartNATS(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	nc, err := tcnats.Run(ctx,
		"nats:2.10-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("Server is ready"),
				wait.ForListeningPort("4222/tcp"),
			).WithDeadline(45*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, nc)
	if err != nil {
		t.Fatalf("failed to start nats container: %v", err)
	}

	url, err := nc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get nats connection string: %v", err)
	}
	return url
}
