// Package session persists the identity of the logged-in user in a
// key-value storage under a single key.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/ports"
)

// DefaultKey is the storage key holding the session identity
const DefaultKey = "sentinel_user"

// Repository implements ports.SessionRepository
type Repository struct {
	storage ports.KeyValueStorage
	codec   Codec
	key     string
	logger  logger.Logger
}

// NewRepository creates a session repository. An empty key uses DefaultKey.
func NewRepository(storage ports.KeyValueStorage, codec Codec, key string, log logger.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if codec == nil {
		codec = JSONCodec{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Repository{
		storage: storage,
		codec:   codec,
		key:     key,
		logger:  log,
	}
}

// Load returns the stored identity. A missing or unreadable value means nobody is logged in.
func (r *Repository) Load(ctx context.Context) (*domain.User, error) {
	data, err := r.storage.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session identity: %w", err)
	}

	user, err := r.codec.Decode(data)
	if err != nil {
		r.logger.Warn(ctx, "Discarding unreadable session identity", map[string]interface{}{
			"key":   r.key,
			"error": err.Error(),
		})
		return nil, nil
	}
	return &user, nil
}

// Save stores user under the session key
func (r *Repository) Save(ctx context.Context, user domain.User) error {
	data, err := r.codec.Encode(user)
	if err != nil {
		return err
	}
	if err := r.storage.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to write session identity: %w", err)
	}
	return nil
}

// Clear removes the session key
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.storage.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("failed to clear session identity: %w", err)
	}
	return nil
}
