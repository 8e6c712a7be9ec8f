package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arcynforge/forge-backend/internal/docstore"
	"github.com/arcynforge/forge-backend/internal/schema"
)

func (h *Handler) list(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not available"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	docs, err := h.store.Find(c.Request.Context(), schema.Project.Name, nil, limit)
	if err != nil {
		h.logger.Error("list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	items := make([]docstore.Document, 0, len(docs))
	for _, doc := range docs {
		items = append(items, docstore.Public(doc))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) create(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not available"})
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	doc, err := schema.Project.ValidateAndApply(raw)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "details": verr.Fields})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	id, err := h.store.Insert(c.Request.Context(), schema.Project.Name, doc)
	if err != nil {
		h.logger.Error("create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

func (h *Handler) get(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not available"})
		return
	}

	id, err := docstore.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	doc, err := h.store.Get(c.Request.Context(), schema.Project.Name, id)
	if errors.Is(err, docstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		h.logger.Error("get project", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, docstore.Public(doc))
}
