// Package kv provides the durable key-value persistence layer backing the
// session store. The two named slots (identity, credential) live here;
// SetMany exists so both can be written atomically.
package kv

import "context"

// Repository is an injected key-value store. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
