package http

import "github.com/gin-gonic/gin"

// Register attaches tuning job routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id/status", h.updateStatus)
}
