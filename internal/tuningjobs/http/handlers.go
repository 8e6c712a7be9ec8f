package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arcynforge/forge-backend/internal/docstore"
	"github.com/arcynforge/forge-backend/internal/schema"
	"github.com/arcynforge/forge-backend/internal/tuningjobs/domain"
)

func (h *Handler) list(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not available"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := docstore.Filter{}
	if pid := c.Query("project_id"); pid != "" {
		filter["project_id"] = pid
	}

	docs, err := h.store.Find(c.Request.Context(), schema.TuningJob.Name, filter, limit)
	if err != nil {
		h.logger.Error("list tuning jobs", zap.Error(err))
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

	doc, err := schema.TuningJob.ValidateAndApply(raw)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "details": verr.Fields})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// A blank status is coerced the same way a missing one is defaulted.
	if s, _ := doc["status"].(string); s == "" {
		doc["status"] = domain.StatusQueued
	}

	id, err := h.store.Insert(c.Request.Context(), schema.TuningJob.Name, doc)
	if err != nil {
		h.logger.Error("create tuning job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if h.sim != nil {
		h.sim.Advance(id)
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String(), "status": doc["status"]})
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

	doc, err := h.store.Get(c.Request.Context(), schema.TuningJob.Name, id)
	if errors.Is(err, docstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tuning job not found"})
		return
	}
	if err != nil {
		h.logger.Error("get tuning job", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, docstore.Public(doc))
}

// updateStatus writes any non-empty status string. No transition legality is
// enforced: a completed job can be pushed back to queued. A concurrent
// simulator write races this one and the last write wins.
func (h *Handler) updateStatus(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not available"})
		return
	}

	id, err := docstore.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status is required"})
		return
	}

	doc, err := h.store.Update(c.Request.Context(), schema.TuningJob.Name, id, docstore.Document{"status": req.Status})
	if errors.Is(err, docstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tuning job not found"})
		return
	}
	if err != nil {
		h.logger.Error("update tuning job status", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, docstore.Public(doc))
}
