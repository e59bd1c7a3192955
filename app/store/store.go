package store

import "context"

// Keys used by the session layer.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
)

// Store is the durable key-value store for on-device credentials.
// A missing key is reported as ("", false), not as an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
