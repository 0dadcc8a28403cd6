package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
)

// flakyStore is a MemoryStore whose operations can be made to fail.
type flakyStore struct {
	*kv.MemoryStore

	mu         sync.Mutex
	failGet    bool
	failSet    bool
	failRemove bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: kv.NewMemoryStore()}
}

func (f *flakyStore) fail(get, set, remove bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet, f.failSet, f.failRemove = get, set, remove
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, fmt.Errorf("failed to get value[%s]: %w", key, common.ErrStorage)
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("failed to set value[%s]: %w", key, common.ErrStorage)
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *flakyStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failRemove
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("failed to remove value[%s]: %w", key, common.ErrStorage)
	}
	return f.MemoryStore.Remove(ctx, key)
}
