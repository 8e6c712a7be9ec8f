// Package lifecycle advances freshly created tuning jobs through their
// status sequence after the creating request has already returned.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arcynforge/forge-backend/internal/docstore"
	"github.com/arcynforge/forge-backend/internal/metrics"
	"github.com/arcynforge/forge-backend/internal/schema"
	"github.com/arcynforge/forge-backend/internal/tuningjobs/domain"
)

const (
	// DefaultStep is the pause before each status transition.
	DefaultStep = 2 * time.Second

	writeTimeout = 5 * time.Second
)

// Run is the handle for one scheduled advance. Done is closed once the
// sequence stops, whatever the reason.
type Run struct {
	done chan struct{}

	mu    sync.Mutex
	final string
	err   error
}

func newRun() *Run {
	return &Run{done: make(chan struct{}), final: domain.StatusQueued}
}

// Done reports completion of the background sequence.
func (r *Run) Done() <-chan struct{} { return r.done }

// Final returns the last status the simulator successfully wrote.
func (r *Run) Final() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.final
}

// Err returns the write error that aborted the sequence, if any.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Run) setFinal(status string) {
	r.mu.Lock()
	r.final = status
	r.mu.Unlock()
}

func (r *Run) abort(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// Simulator owns the background status transitions. Nothing persists its
// progress: a restart leaves jobs in whatever status was last written.
type Simulator struct {
	store  docstore.Store
	logger *zap.Logger
	step   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSimulator builds a simulator over the given store. A non-positive step
// falls back to DefaultStep.
func NewSimulator(store docstore.Store, logger *zap.Logger, step time.Duration) *Simulator {
	if step <= 0 {
		step = DefaultStep
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Simulator{
		store:  store,
		logger: logger,
		step:   step,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Advance schedules the queued, running, completed sequence for one job
// and returns immediately; the transitions run on their own goroutine. The
// returned handle is for observers; the HTTP layer discards it.
func (s *Simulator) Advance(id docstore.ID) *Run {
	run := newRun()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(run.done)
		s.advance(id, run)
	}()
	return run
}

func (s *Simulator) advance(id docstore.ID, run *Run) {
	for _, status := range []string{domain.StatusRunning, domain.StatusCompleted} {
		if !s.pause() {
			return
		}
		if err := s.setStatus(id, status); err != nil {
			run.abort(err)
			s.logger.Warn("tuning job transition failed",
				zap.String("job_id", id.String()),
				zap.String("status", status),
				zap.Error(err))
			s.markFailed(id, run)
			return
		}
		run.setFinal(status)
		metrics.ObserveTransition(status)
		s.logger.Info("tuning job advanced",
			zap.String("job_id", id.String()),
			zap.String("status", status))
	}
}

// pause waits one step, or reports false when the simulator is closing.
func (s *Simulator) pause() bool {
	t := time.NewTimer(s.step)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Simulator) setStatus(id docstore.ID, status string) error {
	ctx, cancel := context.WithTimeout(s.ctx, writeTimeout)
	defer cancel()
	_, err := s.store.Update(ctx, schema.TuningJob.Name, id, docstore.Document{"status": status})
	return err
}

// markFailed makes one best-effort attempt to record the failure on the job
// itself. An error here is logged and dropped; there is no escalation path.
func (s *Simulator) markFailed(id docstore.ID, run *Run) {
	if err := s.setStatus(id, domain.StatusFailed); err != nil {
		s.logger.Warn("could not mark tuning job failed",
			zap.String("job_id", id.String()),
			zap.Error(err))
		return
	}
	run.setFinal(domain.StatusFailed)
	metrics.ObserveTransition(domain.StatusFailed)
}

// Close cancels in-flight runs and waits for their goroutines to exit.
// Cancelled runs stop between writes and never write again.
func (s *Simulator) Close() {
	s.cancel()
	s.wg.Wait()
}
