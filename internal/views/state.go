// Package views holds the console's view controllers. Each view owns the data
// one page shows, loads it concurrently from the entity services, reloads it
// after every mutation and keeps the error the page should render.
package views

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ashendes/beer-console/internal/apperr"
	"github.com/ashendes/beer-console/internal/metrics"
	"github.com/ashendes/beer-console/internal/patterns"
)

// Page is what a view renders.
type Page[T any] struct {
	Data   T    `json:"data"`
	Loaded bool `json:"loaded"`
	// Error replaces the whole page; set when the first load fails.
	Error string `json:"error,omitempty"`
	// InlineError is shown next to the data; set when a mutation or a later
	// reload fails.
	InlineError string `json:"inlineError,omitempty"`
}

// state holds one view's data. Each load takes a generation number, and only
// the newest generation may store its result.
type state[T any] struct {
	mu         sync.Mutex
	generation uint64
	data       T
	loaded     bool
	loadErr    error
	inlineErr  error
}

func (s *state[T]) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// commit stores a load result unless a newer load has started since gen.
func (s *state[T]) commit(gen uint64, data T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	if err != nil {
		// Only a view that never loaded loses its page; later failures keep
		// the data on screen.
		if s.loaded {
			s.inlineErr = err
		} else {
			s.loadErr = err
		}
		return true
	}
	s.data = data
	s.loaded = true
	s.loadErr = nil
	return true
}

func (s *state[T]) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inlineErr = err
}

func (s *state[T]) clearInline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inlineErr = nil
}

func (s *state[T]) snapshot() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.loaded
}

func (s *state[T]) page() Page[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Page[T]{
		Data:        s.data,
		Loaded:      s.loaded,
		Error:       apperr.Message(s.loadErr),
		InlineError: apperr.Message(s.inlineErr),
	}
}

// load runs fetch under a new generation and records the outcome.
func load[T any](ctx context.Context, view string, s *state[T], fetch func(context.Context) (T, error)) (T, error) {
	gen := s.begin()
	data, err := fetch(ctx)

	if !s.commit(gen, data, err) {
		metrics.ViewLoadsTotal.WithLabelValues(view, "stale").Inc()
		log.WithFields(log.Fields{"view": view, "generation": gen}).Debug("Discarding superseded load")
		return data, err
	}

	metrics.ViewLoadsTotal.WithLabelValues(view, metrics.Outcome(err)).Inc()
	if err != nil {
		log.WithField("view", view).WithError(err).Warn("View load failed")
	}
	return data, err
}

// gather runs calls concurrently, at most fanout at a time. The first failure
// fails the whole gather.
func gather(ctx context.Context, fanout *patterns.Bulkhead, calls ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, call := range calls {
		call := call
		g.Go(func() error {
			if fanout == nil {
				return call(gctx)
			}
			return fanout.Execute(gctx, func() error { return call(gctx) })
		})
	}
	return g.Wait()
}

// mutated records the outcome of a mutation and reloads the view on success.
func mutated[T any](ctx context.Context, view, action string, s *state[T], err error, reload func(context.Context) error) error {
	if err != nil {
		s.fail(err)
		log.WithFields(log.Fields{"view": view, "action": action}).WithError(err).Warn("Mutation failed")
		return err
	}
	s.clearInline()
	log.WithFields(log.Fields{"view": view, "action": action}).Info("Mutation succeeded")
	// A failed reload shows inline; the mutation itself succeeded.
	_ = reload(ctx)
	return nil
}
