package handler

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/samw425-glitch/gist-ghost-sync/builder/store/database"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
)

// openStore opens the catalog store for one request. The db query parameter
// overrides the configured store path; a missing store file is an error
// naming the attempted path. The caller must Close the handle.
func openStore(ctx *gin.Context, cfg *config.Config) (*database.DB, error) {
	path := ctx.Query("db")
	if path == "" {
		path = cfg.Database.Path
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("DB not found: %s", path)
	}
	return database.NewDB(ctx.Request.Context(), database.DBConfig{
		Dialect: database.DialectSQLite,
		DSN:     database.SQLiteDSN(path),
	})
}
