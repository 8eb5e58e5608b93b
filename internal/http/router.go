package api

import (
	stdhttp "net/http"

	intconfig "advocates/internal/config"
	h "advocates/internal/http/handlers"
	"advocates/internal/http/middleware"
	"advocates/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		advocates := api.Group("/advocates")
		advocates.GET("", h.SearchAdvocates)
		advocates.GET("/:id", h.GetAdvocate)

		exports := api.Group("/exports")
		exports.GET("/advocates", h.ExportAdvocatesPDF)
	}

	h.SetRouter(r)
	return r
}

// NewHandler wraps the router with gzip response compression.
func NewHandler(env intconfig.Env) stdhttp.Handler {
	return gzhttp.GzipHandler(NewRouter(env))
}
