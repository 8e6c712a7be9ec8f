package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcynforge/forge-backend/internal/schema"
)

// SchemaHandler exposes the JSON schemas for the known models so external
// tools can inspect them.
type SchemaHandler struct{}

func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

func (h *SchemaHandler) GetSchema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": schema.Definitions()})
}

func (h *SchemaHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/schema", h.GetSchema)
}
