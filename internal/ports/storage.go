package ports

import (
	"context"
	"errors"

	"github.com/sentinel/sentinel/internal/domain"
)

// ErrKeyNotFound is returned by KeyValueStorage when a key holds no value
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStorage defines the durable key-value storage used for the session identity
type KeyValueStorage interface {
	// Get returns the value stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}

// SessionRepository persists the identity of the logged-in user
type SessionRepository interface {
	// Load returns the persisted identity, or nil when nobody is logged in
	Load(ctx context.Context) (*domain.User, error)

	// Save persists user as the current identity
	Save(ctx context.Context, user domain.User) error

	// Clear removes the persisted identity
	Clear(ctx context.Context) error
}
