// Package metadata is a key/value store over the local "metadata" table.
// The session service keeps its sealed credentials here.
package metadata

import (
	"context"
)

// Repository stores opaque byte values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
