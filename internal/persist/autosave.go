package persist

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-clicker/internal/game"
)

const (
	// DefaultAutosaveInterval is how often live sessions are synced to
	// the cloud store.
	DefaultAutosaveInterval = 30 * time.Second

	// AutosaveSlot is the reserved slot name for periodic saves.
	AutosaveSlot = "autosave"
)

// AutosaveWorker periodically pushes every live session's snapshot to
// the cloud store. Failures are logged and retried on the next round;
// gameplay never waits on it.
type AutosaveWorker struct {
	registry *game.Registry
	cloud    *CloudStore
	interval time.Duration
}

type AutosaveWorkerOpt func(*AutosaveWorker)

func WithAutosaveInterval(d time.Duration) AutosaveWorkerOpt {
	return func(w *AutosaveWorker) {
		w.interval = d
	}
}

func NewAutosaveWorker(registry *game.Registry, cloud *CloudStore, opts ...AutosaveWorkerOpt) *AutosaveWorker {
	w := &AutosaveWorker{
		registry: registry,
		cloud:    cloud,
		interval: DefaultAutosaveInterval,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *AutosaveWorker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.saveAll(ctx)
		}
	}
}

func (w *AutosaveWorker) saveAll(ctx context.Context) {
	w.registry.ForEach(func(e *game.Engine) {
		err := w.cloud.Save(ctx, e.OwnerId(), AutosaveSlot, e.Snapshot(), true)
		if err != nil {
			slog.WarnContext(ctx, "autosave failed", "owner", e.OwnerId(), "error", err)
		}
	})
}
