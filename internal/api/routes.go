package api

import (
	"github.com/gin-gonic/gin"

	"github.com/papertrail/classifier/internal/auth"
	"github.com/papertrail/classifier/internal/telemetry"
)

// RegisterRoutes installs all API routes on the router. When jwtSecret is
// non-empty the rule mutation endpoints require a valid bearer token; read
// endpoints stay open.
func RegisterRoutes(router *gin.Engine, h *Handler, tp *telemetry.Provider, jwtSecret string) {
	router.GET("/metrics", gin.WrapH(tp.Handler()))

	v1 := router.Group("/api/v1")
	v1.POST("/classify", h.Classify)
	v1.POST("/classify/batch", h.ClassifyBatch)
	v1.GET("/classify/:document_id", h.GetClassification)
	v1.GET("/rules", h.ListRules)
	v1.GET("/history", h.GetHistory)
	v1.GET("/stats", h.GetStats)

	mutations := v1.Group("")
	if jwtSecret != "" {
		mutations.Use(auth.Middleware(jwtSecret))
	}
	mutations.POST("/rules", h.CreateRule)
	mutations.PUT("/rules/:id", h.UpdateRule)
	mutations.DELETE("/rules/:id", h.DeleteRule)
}
