package start

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/samw425-glitch/gist-ghost-sync/api/httpbase"
	"github.com/samw425-glitch/gist-ghost-sync/api/router"
	"github.com/samw425-glitch/gist-ghost-sync/builder/store/database"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
)

var serverCmd = &cobra.Command{
	Use:     "server",
	Short:   "Start the catalog query API server",
	Example: serverExample(),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		dbConfig := database.DBConfig{
			Dialect: database.DatabaseDialect(cfg.Database.Driver),
			DSN:     cfg.Database.DSN,
		}
		if dbConfig.Dialect == database.DialectSQLite {
			if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
				return fmt.Errorf("creating store directory: %w", err)
			}
			dbConfig.DSN = database.SQLiteDSN(cfg.Database.Path)
		}
		db, err := database.NewDB(cmd.Context(), dbConfig)
		if err != nil {
			return fmt.Errorf("initializing DB connection: %w", err)
		}
		err = database.Init(cmd.Context(), db)
		// queries run on per-request handles, this one only bootstraps the schema
		_ = db.Close()
		if err != nil {
			return fmt.Errorf("initializing DB schema: %w", err)
		}

		r, err := router.NewRouter(cfg)
		if err != nil {
			return err
		}
		slog.Info("starting catalog server", slog.Int("port", cfg.APIServer.Port), slog.String("store", cfg.Database.Path))
		server := httpbase.NewGracefulServer(
			httpbase.GraceServerOpt{
				Port: cfg.APIServer.Port,
			},
			r,
		)
		server.Run()

		return nil
	},
}

func serverExample() string {
	return `
# for development
gist-ghost-sync start server
`
}
