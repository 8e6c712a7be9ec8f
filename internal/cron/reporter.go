package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/arcynforge/forge-backend/internal/docstore"
)

const reportTimeout = 5 * time.Second

// Reporter periodically logs per-collection document counts. It is the
// operational stand-in for a dashboard: everything it learns goes to the log.
type Reporter struct {
	store  docstore.Store
	logger *zap.Logger
	spec   string
	c      *cron.Cron
}

// NewReporter builds a reporter on a 6-field cron spec (seconds first).
// Spec "off" disables it.
func NewReporter(store docstore.Store, logger *zap.Logger, spec string) *Reporter {
	return &Reporter{store: store, logger: logger, spec: spec}
}

// Start schedules the periodic report. It is a no-op when disabled or when
// the service runs without a store.
func (r *Reporter) Start() error {
	if r.spec == "off" || r.store == nil {
		r.logger.Info("collection stats reporter disabled")
		return nil
	}

	r.c = cron.New(cron.WithSeconds())
	if _, err := r.c.AddFunc(r.spec, r.report); err != nil {
		return fmt.Errorf("schedule stats report: %w", err)
	}
	r.c.Start()
	r.logger.Info("collection stats reporter started", zap.String("spec", r.spec))
	return nil
}

func (r *Reporter) report() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	names, err := r.store.Collections(ctx)
	if err != nil {
		r.logger.Warn("collection stats: list collections", zap.Error(err))
		return
	}

	fields := make([]zap.Field, 0, len(names))
	for _, name := range names {
		n, err := r.store.Count(ctx, name)
		if err != nil {
			r.logger.Warn("collection stats: count", zap.String("collection", name), zap.Error(err))
			continue
		}
		fields = append(fields, zap.Int64(name, n))
	}
	r.logger.Info("collection stats", fields...)
}

// Stop halts scheduling and waits for an in-flight report to finish.
func (r *Reporter) Stop() {
	if r.c != nil {
		<-r.c.Stop().Done()
	}
}
