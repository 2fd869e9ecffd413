// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/service"
	"github.com/roadwatch/roadwatch/models"
)

// ReconcileWorker keeps the local report snapshot converged with the remote
// collection. It owns the subscription lifecycle: the sync engine never
// retries a broken stream, so this worker resubscribes and runs a full
// fetch on the next tick after a stream error, and periodically re-fetches
// to heal any drift from out-of-order diff delivery.
type ReconcileWorker struct {
	sync     service.SyncService
	interval time.Duration
	logger   *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	current      map[string]models.Report
	unsubscribe  func()
	streamBroken bool
}

// NewReconcileWorker builds the reconciliation loop. interval controls both
// the periodic full fetch and how quickly a broken stream is reopened.
func NewReconcileWorker(ctx context.Context, syncSvc service.SyncService, interval time.Duration, logger *logger.Logger) *ReconcileWorker {
	ctx, cancel := context.WithCancel(ctx)
	return &ReconcileWorker{
		sync:     syncSvc,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		current:  map[string]models.Report{},
	}
}

// Run implements [Worker].
func (w *ReconcileWorker) Run() {
	w.wg.Add(1)
	go w.loop()
}

// Stop implements [Worker].
func (w *ReconcileWorker) Stop() {
	w.cancel()
	w.wg.Wait()

	w.mu.Lock()
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	w.mu.Unlock()
}

func (w *ReconcileWorker) loop() {
	defer w.wg.Done()

	w.reconcile()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.reconcile()
		}
	}
}

// reconcile runs one full fetch and makes sure a live subscription is open.
func (w *ReconcileWorker) reconcile() {
	reports, err := w.sync.FetchAll(w.ctx)
	if err != nil {
		w.logger.Warn().Err(err).Str("func", "reconcile").
			Msg("full report fetch failed, keeping stale snapshot")
	} else {
		w.mu.Lock()
		w.current = snapshotMap(reports)
		w.mu.Unlock()
	}

	w.ensureSubscribed()
}

func (w *ReconcileWorker) ensureSubscribed() {
	w.mu.Lock()
	if w.unsubscribe != nil && !w.streamBroken {
		w.mu.Unlock()
		return
	}
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	w.streamBroken = false
	w.mu.Unlock()

	unsubscribe, err := w.sync.Subscribe(w.ctx, w.onDiffs, w.onStreamError)
	if err != nil {
		w.logger.Warn().Err(err).Str("func", "ensureSubscribed").
			Msg("report stream open failed, retrying on next tick")
		w.mu.Lock()
		w.streamBroken = true
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.unsubscribe = unsubscribe
	w.mu.Unlock()
}

func (w *ReconcileWorker) onDiffs(diffs []models.ReportDiff) {
	w.mu.Lock()
	current := w.current
	w.mu.Unlock()

	reports, err := w.sync.ApplyDiffs(w.ctx, current, diffs)
	if err != nil {
		w.logger.Err(err).Str("func", "onDiffs").
			Msg("diff application failed, snapshot heals on next full fetch")
		return
	}

	w.mu.Lock()
	w.current = snapshotMap(reports)
	w.mu.Unlock()
}

func (w *ReconcileWorker) onStreamError(err error) {
	w.logger.Warn().Err(err).Str("func", "onStreamError").
		Msg("report stream failed, resubscribing on next tick")
	w.mu.Lock()
	w.streamBroken = true
	w.mu.Unlock()
}

func snapshotMap(reports []models.Report) map[string]models.Report {
	out := make(map[string]models.Report, len(reports))
	for _, report := range reports {
		out[report.ID] = report
	}
	return out
}
