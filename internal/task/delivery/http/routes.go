package http

import (
	"github.com/gin-gonic/gin"

	"voice-task-management/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods. Extraction
// routes call the text-generation backend and are rate limited.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/:id", h.Detail)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)

		tasks.POST("/extract", mw.RateLimit(), h.Extract)
		tasks.POST("/voice", mw.RateLimit(), h.CreateFromVoice)
	}
}
