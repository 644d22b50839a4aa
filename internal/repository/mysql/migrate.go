package mysql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

type gooseLogger struct{ log zerolog.Logger }

func (g gooseLogger) Printf(format string, v ...any) { g.log.Info().Msgf(format, v...) }
func (g gooseLogger) Fatalf(format string, v ...any) { g.log.Fatal().Msgf(format, v...) }

// Migrate runs the embedded goose migrations; cmd is one of up, down or status.
func Migrate(ctx context.Context, db *sql.DB, cmd string, logger zerolog.Logger) error {
	if db == nil {
		return errNilDB
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	switch cmd {
	case "up":
		return goose.UpContext(ctx, db, "migrations")
	case "down":
		return goose.DownContext(ctx, db, "migrations")
	case "status":
		return goose.StatusContext(ctx, db, "migrations")
	default:
		return fmt.Errorf("unknown migrate command %q", cmd)
	}
}
