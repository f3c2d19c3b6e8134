// Package worker reacts to goal source change notifications.
package worker

import (
	"context"
	"sync"
	"time"

	"lifegoals/internal/amqp"
	applog "lifegoals/internal/log"
)

// Invalidator drops cached goal data.
type Invalidator interface {
	InvalidateGoals()
}

// RefreshWorker applies refresh notifications to a running dashboard.
// A notification not newer than the newest one already applied is
// acknowledged without invalidating again, so a redelivered backlog does not
// thrash the cache. Only publisher timestamps are compared; the local clock
// never moves the watermark.
type RefreshWorker struct {
	target Invalidator
	logger *applog.Logger

	mu        sync.Mutex
	watermark time.Time
}

func NewRefreshWorker(target Invalidator, logger *applog.Logger) *RefreshWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &RefreshWorker{
		target: target,
		logger: logger.WithComponent(applog.ComponentAMQP),
	}
}

// HandleRefreshMessage invalidates the goal cache for msg.
func (w *RefreshWorker) HandleRefreshMessage(msg *amqp.RefreshMessage) error {
	if !msg.Timestamp.IsZero() {
		w.mu.Lock()
		stale := !msg.Timestamp.After(w.watermark)
		if !stale {
			w.watermark = msg.Timestamp
		}
		w.mu.Unlock()

		if stale {
			w.logger.Debug("Skipping stale refresh message",
				"source", msg.Source,
				"timestamp", msg.Timestamp)
			return nil
		}
	}

	w.invalidate(msg.Source, msg.Reason)
	return nil
}

func (w *RefreshWorker) invalidate(source, reason string) {
	w.target.InvalidateGoals()
	w.logger.Info("Applied goals refresh",
		"source", source,
		"reason", reason,
		applog.FieldOperation, applog.OpInvalidate)
}

// PeriodicRefresh invalidates the goal cache every interval until ctx is
// done. It covers notifications lost while the broker was unreachable and
// leaves the notification watermark alone.
func (w *RefreshWorker) PeriodicRefresh(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.invalidate("timer", "periodic refresh")
		}
	}
}
