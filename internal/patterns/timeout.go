package patterns

import (
	"context"
	"time"
)

// NoTimeout leaves remote calls unbounded.
const NoTimeout time.Duration = 0

// WithTimeout bounds ctx by duration. A non-positive duration returns ctx
// unchanged so calls can hang as long as the remote collaborator does.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, duration)
}
