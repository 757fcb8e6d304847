package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/linkshelf/pkg/linkshelf/bookmarks"
	"github.com/mikepea/linkshelf/pkg/linkshelf/importexport"
	"github.com/mikepea/linkshelf/pkg/linkshelf/logging"
	"github.com/mikepea/linkshelf/pkg/linkshelf/metrics"
	"github.com/mikepea/linkshelf/pkg/linkshelf/store"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/mikepea/linkshelf/api/swagger"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Store    *store.Store
	Logger   *zap.Logger
	BasePath string // mount point of the bookmarks collection, e.g. /api/bookmarks
	MaxLimit int
}

// NewRouter assembles the gin engine with all middleware and routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinRecovery(deps.Logger))
	r.Use(logging.GinLogger(deps.Logger))
	r.Use(metrics.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", metrics.Handler())

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": "linkshelf",
			})
		})

		importExportHandler := importexport.NewHandler(deps.Store, deps.Logger)
		importExportHandler.RegisterRoutes(api)
	}

	bookmarksHandler := bookmarks.NewHandler(deps.Store, deps.Logger, bookmarks.WithMaxLimit(deps.MaxLimit))
	bookmarksHandler.RegisterRoutes(r.Group(deps.BasePath))

	return r
}
