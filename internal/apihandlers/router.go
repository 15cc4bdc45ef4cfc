package apihandlers

import (
	"github.com/gin-gonic/gin"

	"librisk/internal/app"
)

// NewRouter builds the gin engine with every route mounted.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.Default() // Includes logger and recovery middleware
	RegisterRoutes(router, a)
	return router
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(router *gin.Engine, a *app.App) {
	apiHandler := NewAPIHandler(a)

	v1 := router.Group("/api/v1")
	v1.GET("/health", apiHandler.HealthHandler)
	v1.GET("/model-info", apiHandler.ModelInfoHandler)

	user := v1.Group("", IdentityMiddleware(IdentityOptions{
		CookieName:  a.Config.Server.CookieName,
		TrustHeader: a.Config.Server.TrustUserHeader,
	}, a.HistoryService))
	{
		user.POST("/predict", apiHandler.PredictHandler)
		user.GET("/history", apiHandler.HistoryHandler)
		user.POST("/clear-history", apiHandler.ClearHistoryHandler)
	}

	// Root-level health check for load balancers
	router.GET("/health", apiHandler.HealthHandler)
}
