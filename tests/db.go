package tests

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DIMO-Network/shared/pkg/db"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/db/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestContainer is a postgres container shared by every test of a package run.
// It is terminated when the last test that asked for it finishes.
type TestContainer struct {
	container testcontainers.Container
	DB        *sql.DB
	Settings  db.Settings
	onceSetup sync.Once
	refs      atomic.Int64
}

var globalTestContainer TestContainer

func (tc *TestContainer) TeardownIfLastTest(t *testing.T) {
	tc.refs.Add(1)
	t.Cleanup(func() {
		refs := tc.refs.Add(-1)
		if refs != 0 {
			return
		}
		tc.Close()
		// reset the onceSetup to allow the next test to run if this one is closed
		globalTestContainer.onceSetup = sync.Once{}
	})
}

func (tc *TestContainer) Close() {
	_ = tc.DB.Close()
	_ = tc.container.Terminate(context.Background())
}

// CountRows counts the rows of a table of the service schema matching the where
// clause, e.g. CountRows(t, "signals", "vehicle_id = $1", id).
func (tc *TestContainer) CountRows(t *testing.T, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + migrations.SchemaName + "." + table
	if where != "" {
		query += " WHERE " + where
	}
	var count int
	require.NoError(t, tc.DB.QueryRowContext(t.Context(), query, args...).Scan(&count))
	return count
}

// SetupTestContainer starts postgres once and applies every migration.
func SetupTestContainer(t *testing.T) *TestContainer {
	globalTestContainer.onceSetup.Do(func() {
		ctx := context.Background()
		var err error
		globalTestContainer.container, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("vehicle_signals"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)

		host, err := globalTestContainer.container.Host(ctx)
		require.NoError(t, err)
		port, err := globalTestContainer.container.MappedPort(ctx, "5432")
		require.NoError(t, err)

		globalTestContainer.Settings = db.Settings{
			Host:     host,
			Port:     port.Port(),
			User:     "postgres",
			Password: "postgres",
			Name:     "vehicle_signals",
			SSLMode:  "disable",
		}

		globalTestContainer.DB, err = sql.Open("postgres", globalTestContainer.Settings.BuildConnectionString(true))
		require.NoError(t, err)

		require.NoError(t, migrations.Up(ctx, globalTestContainer.Settings))
	})
	globalTestContainer.TeardownIfLastTest(t)
	return &globalTestContainer
}
