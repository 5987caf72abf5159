package worker

import (
	"context"
	"sync"
	"time"

	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/usecase"
	"github.com/venuescope/venuesync/pkg/utils/logging"
)

// SyncWorker runs the import pipeline for all configured sources: once at
// startup and then on a fixed recurring interval.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type SyncWorker struct {
	uc       *usecase.ImportUseCase
	sources  []model.SyncSource
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}

	// running guards against overlapping runs when a trigger fires while the
	// previous run has not finished
	running sync.Mutex
}

// NewSyncWorker creates a new worker for the sync pipeline
func NewSyncWorker(uc *usecase.ImportUseCase, sources []model.SyncSource, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		uc:       uc,
		sources:  sources,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sync loop
// - Initial run and periodic runs both happen in a background goroutine
// - Does not block server startup
func (w *SyncWorker) Start(ctx context.Context) error {
	logging.Default().Info("Sync worker starting",
		"interval", w.interval.String(),
		"sources", len(w.sources))

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SyncWorker) Stop() {
	logging.Default().Info("Sync worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Sync worker stopped")
}

// Trigger starts a run immediately if none is in flight. It returns false
// when a run is already in progress.
func (w *SyncWorker) Trigger(ctx context.Context) bool {
	return w.runOnce(ctx)
}

// run is the main worker loop (runs in goroutine)
func (w *SyncWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Initial run at process start, independent of the recurring trigger
	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)

		case <-w.stopCh:
			logging.Default().Info("Sync worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Sync worker context cancelled")
			return
		}
	}
}

// runOnce executes one pipeline run unless another is already in progress
func (w *SyncWorker) runOnce(ctx context.Context) bool {
	if !w.running.TryLock() {
		logging.Default().Warn("Sync run still in progress, skipping trigger")
		return false
	}
	defer w.running.Unlock()

	startTime := time.Now()
	logging.Default().Info("Starting sync run")

	report, err := w.uc.RunOnce(ctx, w.sources)
	if err != nil {
		// The run itself completed source by source; only report persistence
		// can fail here. Log and let the next interval retry naturally.
		logging.Default().Error("Sync run finished with error (will retry next interval)",
			"error", err.Error())
	}

	if report != nil {
		logging.Default().Info("Sync run completed",
			"runID", string(report.ID),
			"succeeded", report.Succeeded(),
			"duration", time.Since(startTime).String())
	}

	return true
}
