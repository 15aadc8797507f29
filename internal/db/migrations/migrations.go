// Package migrations embeds the SQL schema of the service and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/DIMO-Network/shared/pkg/db"
	_ "github.com/lib/pq" // postgres driver
	"github.com/pressly/goose/v3"
)

// SchemaName is the postgres schema that holds every table of the service.
const SchemaName = "vehicle_signals_webhook"

//go:embed *.sql
var baseFS embed.FS

// goose keeps its migrations and base FS in package globals.
var migrationLock sync.Mutex

// Up applies every pending migration.
func Up(ctx context.Context, settings db.Settings) error {
	return RunGoose(ctx, []string{"up"}, settings)
}

// RunGoose runs a goose command, e.g. RunGoose(ctx, []string{"up-to", "1"}, settings).
// The first element is the command, the rest are its arguments.
func RunGoose(ctx context.Context, gooseArgs []string, settings db.Settings) error {
	if len(gooseArgs) == 0 {
		return fmt.Errorf("command not provided")
	}
	conn, err := openWithSchema(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	migrationLock.Lock()
	defer migrationLock.Unlock()

	goose.SetBaseFS(baseFS)
	goose.ResetGlobalMigrations()
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	goose.SetTableName(SchemaName + ".migrations")
	if err := goose.RunContext(ctx, gooseArgs[0], conn, ".", gooseArgs[1:]...); err != nil {
		return fmt.Errorf("failed to run goose %s: %w", gooseArgs[0], err)
	}
	return nil
}

func openWithSchema(ctx context.Context, settings db.Settings) (*sql.DB, error) {
	conn, err := sql.Open("postgres", settings.BuildConnectionString(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+SchemaName+";"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	return conn, nil
}
