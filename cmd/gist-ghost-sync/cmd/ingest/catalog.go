package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/samw425-glitch/gist-ghost-sync/builder/store/database"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
	"github.com/samw425-glitch/gist-ghost-sync/component"
)

var (
	catalogFile string
	modulesFile string
	storePath   string
)

func init() {
	catalogCmd.Flags().StringVar(&catalogFile, "file", "", "path of the files.json catalog produced by the collector")
	catalogCmd.Flags().StringVar(&modulesFile, "modules", "", "path of the optional gist modules catalog")
	catalogCmd.Flags().StringVar(&storePath, "db", "", "path of the output store file")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Ingest a collected content catalog into the sqlite store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if catalogFile == "" {
			catalogFile = cfg.Ingest.CatalogFile
		}
		if modulesFile == "" {
			modulesFile = cfg.Ingest.ModulesFile
		}
		if storePath == "" {
			storePath = cfg.Database.Path
		}

		if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
		db, err := database.NewDB(cmd.Context(), database.DBConfig{
			Dialect: database.DialectSQLite,
			DSN:     database.SQLiteDSN(storePath),
		})
		if err != nil {
			return fmt.Errorf("initializing DB connection: %w", err)
		}
		defer db.Close()
		if err := database.Init(cmd.Context(), db); err != nil {
			return fmt.Errorf("initializing DB schema: %w", err)
		}

		summary, err := component.NewIngestionComponent(db).Run(cmd.Context(), catalogFile, modulesFile)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		slog.Info("wrote database", slog.String("path", storePath),
			slog.Int("repos", summary.Repos),
			slog.Int("assets", summary.Assets),
			slog.Int("modules", summary.Modules),
			slog.Int("module_files", summary.ModuleFiles),
		)
		return nil
	},
}
