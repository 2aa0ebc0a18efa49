// Package store defines the durable key-value storage the list and the
// login session are kept in. Backends live in the subpackages.
package store

import "context"

// Store is a small durable key-value map.
// Get reports ok=false when the key is absent; that is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
