package patterns

import (
	"context"

	"github.com/ashendes/beer-console/internal/metrics"
)

// Bulkhead bounds how many calls run at once across everything sharing it.
// The console shares one instance between all view loads, so its size is a
// process-wide limit on concurrent remote fetches.
type Bulkhead struct {
	semaphore chan struct{}
	name      string
	service   string
}

// NewBulkhead creates a new bulkhead with specified capacity
func NewBulkhead(size int, name, service string) *Bulkhead {
	if size < 1 {
		size = 1
	}
	return &Bulkhead{
		semaphore: make(chan struct{}, size),
		name:      name,
		service:   service,
	}
}

// Execute waits for a free slot and runs fn in it. Waiting ends early only when
// ctx is done.
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	select {
	case b.semaphore <- struct{}{}:
		metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Inc()

		defer func() {
			<-b.semaphore
			metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Dec()
		}()

		return fn()

	case <-ctx.Done():
		return ctx.Err()
	}
}

// Capacity returns the number of slots.
func (b *Bulkhead) Capacity() int {
	return cap(b.semaphore)
}
