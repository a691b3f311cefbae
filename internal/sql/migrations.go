package sql

import (
	"context"
	"embed"
	"io/fs"
	"sync"

	"github.com/covercore/covercore/internal/logr"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
)

var (
	mu sync.Mutex

	//go:embed migrations/*.sql
	migrations embed.FS
)

// Migrate migrates the database to the latest migration version.
func Migrate(ctx context.Context, logger logr.Logger, connString string) error {
	mu.Lock()
	defer mu.Unlock()

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return err
	}
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	if err := m.LoadMigrations(fsys); err != nil {
		return err
	}
	m.OnStart = func(sequence int32, name, direction, _ string) {
		logger.V(1).Info("migrating database", "sequence", sequence, "name", name, "direction", direction)
	}
	return m.Migrate(ctx)
}
