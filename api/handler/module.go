package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/samw425-glitch/gist-ghost-sync/api/httpbase"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
	"github.com/samw425-glitch/gist-ghost-sync/component"
)

func NewModuleHandler(config *config.Config) *ModuleHandler {
	return &ModuleHandler{
		config: config,
	}
}

type ModuleHandler struct {
	config *config.Config
}

// Index lists modules newest first, optionally restricted to one repo.
func (h *ModuleHandler) Index(ctx *gin.Context) {
	db, err := openStore(ctx, h.config)
	if err != nil {
		slog.Error("failed to open catalog store", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	defer db.Close()

	modules, err := component.NewCatalogComponent(db).Modules(ctx.Request.Context(), ctx.Query("repo"))
	if err != nil {
		slog.Error("failed to list modules", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, modules)
}

// Files lists a module's files. An unknown module id yields an empty array.
func (h *ModuleHandler) Files(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		httpbase.BadRequest(ctx, "invalid module id: "+ctx.Param("id"))
		return
	}

	db, err := openStore(ctx, h.config)
	if err != nil {
		slog.Error("failed to open catalog store", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	defer db.Close()

	files, err := component.NewCatalogComponent(db).ModuleFiles(ctx.Request.Context(), id)
	if err != nil {
		slog.Error("failed to list module files", "module_id", id, "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, files)
}
