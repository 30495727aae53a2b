package service

import (
	"context"
	"time"

	"github.com/Mithilesh71320/nextera-code/internal/metrics"
	"github.com/Mithilesh71320/nextera-code/internal/stats"

	"go.uber.org/zap"
)

// TokenPurger removes refresh tokens that can no longer be used.
type TokenPurger interface {
	DeleteStaleRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

// WorkerService runs periodic housekeeping: purging dead refresh tokens and sampling
// the dashboard aggregates into gauges.
type WorkerService struct {
	tokens    TokenPurger
	dashboard *DashboardService
	log       *zap.Logger
	interval  time.Duration
}

func NewWorkerService(tokens TokenPurger, dashboard *DashboardService, log *zap.Logger, interval time.Duration) *WorkerService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &WorkerService{
		tokens:    tokens,
		dashboard: dashboard,
		log:       log,
		interval:  interval,
	}
}

// Start blocks until ctx is cancelled
func (w *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("background worker started", zap.Duration("interval", w.interval))
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("background worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single housekeeping pass
func (w *WorkerService) RunOnce(ctx context.Context) {
	if removed, err := w.tokens.DeleteStaleRefreshTokens(ctx, time.Now()); err != nil {
		w.log.Error("failed to purge refresh tokens", zap.Error(err))
	} else if removed > 0 {
		w.log.Debug("purged refresh tokens", zap.Int64("removed", removed))
	}

	nurses, requests, err := w.dashboard.Snapshot(ctx)
	if err != nil {
		w.log.Error("failed to sample dashboard stats", zap.Error(err))
		return
	}
	s := stats.ComputeDashboardStats(nurses, requests)
	metrics.ActiveNurses.Set(float64(s.ActiveNurses))
	metrics.PendingRequests.Set(float64(s.PendingRequests))
	metrics.FillRate.Set(float64(s.FillRate))
}
