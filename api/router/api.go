package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samw425-glitch/gist-ghost-sync/api/handler"
	"github.com/samw425-glitch/gist-ghost-sync/api/middleware"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
)

func NewRouter(config *config.Config) (*gin.Engine, error) {
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowHeaders:     []string{"*"},
		AllowMethods:     []string{"*"},
		AllowAllOrigins:  true,
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.Log())

	healthHandler := handler.NewHealthHandler()
	repoHandler := handler.NewRepoHandler(config)
	assetHandler := handler.NewAssetHandler(config)
	moduleHandler := handler.NewModuleHandler(config)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/repos", repoHandler.Index)
	r.GET("/assets", assetHandler.Index)
	r.GET("/assets/:id", assetHandler.Show)
	r.GET("/modules", moduleHandler.Index)
	r.GET("/modules/:id/files", moduleHandler.Files)

	return r, nil
}
