package watcher

import (
	"context"
	"time"

	"github.com/conneroisu/lectern/internal/logging"
	"github.com/conneroisu/lectern/internal/store"
)

// Reloader swaps in a freshly loaded snapshot.
type Reloader interface {
	Reload(load func() (*store.Store, error)) error
}

// ReloadHandler returns a ChangeHandler that rebuilds the catalog with load
// after every batch of changes. A failed reload leaves the served snapshot
// untouched and is reported to the watcher, which logs it.
func ReloadHandler(r Reloader, load func() (*store.Store, error), logger logging.Logger) ChangeHandler {
	return func(ctx context.Context, events []ChangeEvent) error {
		start := time.Now()
		paths := make([]string, 0, len(events))
		for _, event := range events {
			paths = append(paths, event.Path)
		}

		if err := r.Reload(load); err != nil {
			return err
		}

		if logger != nil {
			logger.Info(ctx, "Content reloaded",
				"files", paths,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		return nil
	}
}
