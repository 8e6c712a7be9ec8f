package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MetaHandler serves the liveness and greeting endpoints.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ArcynForge Backend Running"})
}

func (h *MetaHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from ArcynForge backend API"})
}

func (h *MetaHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/api/hello", h.Hello)
}
