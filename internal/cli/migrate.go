package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxviazov/product-catalog-service/internal/repository/mongodb"
	"github.com/maxviazov/product-catalog-service/internal/repository/mysql"
	"github.com/maxviazov/product-catalog-service/internal/repository/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down|status",
		Short:     "Apply or inspect schema migrations of the configured store",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, op := cmd.Context(), args[0]
			switch e.cfg.Store.Driver {
			case "postgres":
				pool, err := postgres.Open(ctx, e.cfg.Postgres, &e.logger)
				if err != nil {
					return err
				}
				defer pool.Close()
				return postgres.Migrate(ctx, pool, op, e.logger)
			case "mysql":
				db, err := mysql.Open(ctx, e.cfg.MySQL, &e.logger)
				if err != nil {
					return err
				}
				defer db.Close()
				return mysql.Migrate(ctx, db, op, e.logger)
			case "mongo":
				// Collections are schemaless; indexes are the only thing to converge.
				if op != "up" {
					return fmt.Errorf("migrate %s is not supported for mongo", op)
				}
				client, err := mongodb.Open(ctx, e.cfg.Mongo, &e.logger)
				if err != nil {
					return err
				}
				defer client.Disconnect(ctx)
				if err := mongodb.EnsureIndexes(ctx, client.Database(e.cfg.Mongo.Database)); err != nil {
					return err
				}
				e.logger.Info().Str("database", e.cfg.Mongo.Database).Msg("mongo indexes ensured")
				return nil
			default:
				return fmt.Errorf("store driver %q has no schema to migrate", e.cfg.Store.Driver)
			}
		},
	}
}
