package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samw425-glitch/gist-ghost-sync/api/httpbase"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
	"github.com/samw425-glitch/gist-ghost-sync/component"
)

func NewRepoHandler(config *config.Config) *RepoHandler {
	return &RepoHandler{
		config: config,
	}
}

type RepoHandler struct {
	config *config.Config
}

// Index lists all repositories ordered by owner then name.
func (h *RepoHandler) Index(ctx *gin.Context) {
	db, err := openStore(ctx, h.config)
	if err != nil {
		slog.Error("failed to open catalog store", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	defer db.Close()

	repos, err := component.NewCatalogComponent(db).Repos(ctx.Request.Context())
	if err != nil {
		slog.Error("failed to list repositories", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, repos)
}
