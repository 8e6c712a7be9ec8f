package http

import (
	"go.uber.org/zap"

	"github.com/arcynforge/forge-backend/internal/docstore"
	"github.com/arcynforge/forge-backend/internal/tuningjobs/lifecycle"
)

// Handler bundles the dependencies for the tuning job HTTP endpoints. The
// store may be nil when DATABASE_URL is unset; every endpoint then answers
// 503. The simulator may be nil (no store), in which case created jobs stay
// queued until an explicit status update.
type Handler struct {
	store  docstore.Store
	sim    *lifecycle.Simulator
	logger *zap.Logger
}

func NewHandler(store docstore.Store, sim *lifecycle.Simulator, logger *zap.Logger) *Handler {
	return &Handler{store: store, sim: sim, logger: logger}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}
