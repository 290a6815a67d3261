package outbound

import "context"

//go:generate mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks

// KeyValueStore is the persistent storage behind the auth token store.
// Get reports a missing key with found=false, not an error.
type KeyValueStore interface {
	// Get retrieves the value stored under key
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}
