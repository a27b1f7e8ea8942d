package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/samw425-glitch/gist-ghost-sync/api/httpbase"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
	"github.com/samw425-glitch/gist-ghost-sync/common/types"
	"github.com/samw425-glitch/gist-ghost-sync/component"
)

func NewAssetHandler(config *config.Config) *AssetHandler {
	return &AssetHandler{
		config: config,
	}
}

type AssetHandler struct {
	config *config.Config
}

// Index lists assets newest first. Filters repo, ext and q compose with
// AND; limit defaults to 100 and offset to 0.
func (h *AssetHandler) Index(ctx *gin.Context) {
	req := types.ListAssetsReq{
		Repo:      ctx.Query("repo"),
		Extension: ctx.Query("ext"),
		Search:    ctx.Query("q"),
		Limit:     component.DefaultAssetPageSize,
	}
	if v := ctx.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			httpbase.BadRequest(ctx, "invalid limit: "+v)
			return
		}
		req.Limit = limit
	}
	if v := ctx.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			httpbase.BadRequest(ctx, "invalid offset: "+v)
			return
		}
		req.Offset = offset
	}

	db, err := openStore(ctx, h.config)
	if err != nil {
		slog.Error("failed to open catalog store", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	defer db.Close()

	assets, err := component.NewCatalogComponent(db).Assets(ctx.Request.Context(), req)
	if err != nil {
		slog.Error("failed to list assets", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assets)
}

// Show returns one asset by id, 404 when absent.
func (h *AssetHandler) Show(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		httpbase.BadRequest(ctx, "invalid asset id: "+ctx.Param("id"))
		return
	}

	db, err := openStore(ctx, h.config)
	if err != nil {
		slog.Error("failed to open catalog store", "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	defer db.Close()

	asset, err := component.NewCatalogComponent(db).Asset(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httpbase.NotFoundError(ctx, errors.New("asset not found"))
			return
		}
		slog.Error("failed to get asset", "id", id, "error", err)
		httpbase.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, asset)
}
