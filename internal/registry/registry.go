// Package registry holds the content snapshot currently being served and
// notifies watchers when it is replaced.
package registry

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/conneroisu/lectern/internal/store"
)

// Registry manages the current content snapshot
type Registry struct {
	current  atomic.Pointer[published]
	replace  sync.Mutex
	mutex    sync.RWMutex
	watchers []chan SnapshotEvent
}

// published pairs a store with the generation it was served as.
type published struct {
	store      *store.Store
	generation uint64
}

// SnapshotEvent represents a change of the served snapshot
type SnapshotEvent struct {
	Type       EventType
	Generation uint64
	Source     string
	Stats      store.Stats
	Err        error
	Timestamp  time.Time
}

// EventType represents the type of snapshot event
type EventType int

const (
	EventTypeReplaced EventType = iota
	EventTypeReloadFailed
)

func (t EventType) String() string {
	switch t {
	case EventTypeReplaced:
		return "replaced"
	case EventTypeReloadFailed:
		return "reload_failed"
	default:
		return "unknown"
	}
}

// New creates a registry serving initial
func New(initial *store.Store) *Registry {
	r := &Registry{watchers: make([]chan SnapshotEvent, 0)}
	r.current.Store(&published{store: initial, generation: 1})
	return r
}

// Current returns the snapshot being served. Callers should load it once per
// request and read everything from the same snapshot.
func (r *Registry) Current() *store.Store {
	return r.current.Load().store
}

// Generation counts snapshots served so far, starting at 1.
func (r *Registry) Generation() uint64 {
	return r.current.Load().generation
}

// Snapshot returns the snapshot being served together with its generation.
func (r *Registry) Snapshot() (*store.Store, uint64) {
	current := r.current.Load()
	return current.store, current.generation
}

// Replace swaps in a new snapshot and notifies watchers. A nil snapshot is
// ignored. Concurrent replacements are serialized, so watchers see
// generations in increasing order.
func (r *Registry) Replace(s *store.Store) {
	if s == nil {
		return
	}

	r.replace.Lock()
	defer r.replace.Unlock()

	gen := r.current.Load().generation + 1
	r.current.Store(&published{store: s, generation: gen})

	r.notify(SnapshotEvent{
		Type:       EventTypeReplaced,
		Generation: gen,
		Source:     s.Source(),
		Stats:      s.Stats(),
		Timestamp:  time.Now(),
	})
}

// Reload builds a snapshot with load and serves it. When load fails the
// previous snapshot stays in place, watchers are told about the failure and
// the error is returned.
func (r *Registry) Reload(load func() (*store.Store, error)) error {
	s, err := load()
	if err != nil {
		r.notify(SnapshotEvent{
			Type:       EventTypeReloadFailed,
			Generation: r.Generation(),
			Err:        err,
			Timestamp:  time.Now(),
		})
		return err
	}
	r.Replace(s)
	return nil
}

func (r *Registry) notify(event SnapshotEvent) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}

// Watch returns a channel that receives snapshot events
func (r *Registry) Watch() <-chan SnapshotEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan SnapshotEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *Registry) UnWatch(ch <-chan SnapshotEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// WatcherCount returns the number of registered watchers
func (r *Registry) WatcherCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.watchers)
}
