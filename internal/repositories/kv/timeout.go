package kv

import (
	"context"
	"time"
)

// timeoutStore bounds every call of the wrapped Store.
type timeoutStore struct {
	next    Store
	timeout time.Duration
}

// WithTimeout wraps s so each operation runs under d. A non-positive d
// returns s unchanged.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: d}
}

func (t *timeoutStore) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Get(ctx, key)
}

func (t *timeoutStore) Set(ctx context.Context, key string, value string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Set(ctx, key, value)
}

func (t *timeoutStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Remove(ctx, key)
}

func (t *timeoutStore) Close() error { return t.next.Close() }
