package kv

import "context"

type prefixStore struct {
	next   Store
	prefix string
}

// WithPrefix namespaces every key of s under prefix. An empty prefix
// returns s unchanged.
func WithPrefix(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return &prefixStore{next: s, prefix: prefix}
}

func (p *prefixStore) Get(ctx context.Context, key string) (string, bool, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixStore) Set(ctx context.Context, key string, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixStore) Remove(ctx context.Context, key string) error {
	return p.next.Remove(ctx, p.prefix+key)
}

func (p *prefixStore) Close() error { return p.next.Close() }
