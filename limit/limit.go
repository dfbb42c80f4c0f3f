package limit

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds the number of resize jobs running at once. Waiters queue
// in FIFO order and block until a slot frees; there is no timeout.
type Limiter struct {
	sem *semaphore.Weighted
}

func New(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{sem: semaphore.NewWeighted(int64(n))}
}

func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

func (l *Limiter) Release() {
	l.sem.Release(1)
}
