package agent

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nstehr/armada/rules"
)

// Reloader re-reads the tuning file in the background and swaps it into every
// live engine. Engines created after a reload start from the newest tuning.
type Reloader struct {
	mu      sync.Mutex
	path    string
	current rules.Tuning
	engines map[*rules.Engine]struct{}
	ready   chan struct{}
}

// NewReloader starts from tuning. An empty path disables reloading; Trigger
// and Reload then keep the current tuning.
func NewReloader(path string, tuning rules.Tuning) *Reloader {
	return &Reloader{
		path:    path,
		current: tuning,
		engines: make(map[*rules.Engine]struct{}),
		ready:   make(chan struct{}, 1),
	}
}

// Current returns the tuning new engines should be built with.
func (r *Reloader) Current() rules.Tuning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Register adds an engine to receive future reloads. The returned func removes it.
func (r *Reloader) Register(e *rules.Engine) func() {
	r.mu.Lock()
	r.engines[e] = struct{}{}
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.engines, e)
		r.mu.Unlock()
	}
}

// Trigger requests a reload. Requests made while one is pending collapse into it.
func (r *Reloader) Trigger() {
	select {
	case r.ready <- struct{}{}:
	default:
	}
}

// Start blocks until ctx is cancelled, reloading on every trigger.
func (r *Reloader) Start(ctx context.Context) {
	slog.Info("tuning reloader started", "path", r.path)
	for {
		select {
		case <-ctx.Done():
			slog.Info("tuning reloader stopped")
			return
		case <-r.ready:
			if err := r.Reload(); err != nil {
				slog.Error("tuning reload failed", "path", r.path, "error", err)
			}
		}
	}
}

// Reload reads the file and swaps it into each registered engine. A file that
// fails to load or compile leaves the previous tuning in place.
func (r *Reloader) Reload() error {
	if r.path == "" {
		slog.Warn("tuning reload requested without a tuning file")
		return nil
	}
	tuning, err := rules.LoadTuning(r.path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	engines := make([]*rules.Engine, 0, len(r.engines))
	for e := range r.engines {
		engines = append(engines, e)
	}
	r.mu.Unlock()

	for _, e := range engines {
		if err := e.Swap(tuning); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.current = tuning
	r.mu.Unlock()
	slog.Info("tuning reloaded", "path", r.path, "engines", len(engines))
	return nil
}
