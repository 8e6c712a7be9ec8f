package http

import (
	"go.uber.org/zap"

	"github.com/arcynforge/forge-backend/internal/docstore"
)

// Handler bundles the dependencies for the project HTTP endpoints. The store
// may be nil when DATABASE_URL is unset; every endpoint then answers 503.
type Handler struct {
	store  docstore.Store
	logger *zap.Logger
}

func NewHandler(store docstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}
