package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
	redisclient "github.com/senurad/procuretrack-backend/pkg/redis"
)

type draftStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type draftKeyer interface {
	DraftKey(userID string) string
}

// Store persists one in-progress draft per user in Redis as JSON. Every save
// refreshes the TTL, so an actively edited draft never expires mid-session.
type Store struct {
	store draftStore
	keyer draftKeyer
	ttl   time.Duration
}

// NewStore constructs a draft store backed by Redis.
func NewStore(client *redisclient.Client, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("draft ttl must be positive")
	}
	return &Store{store: client, keyer: client, ttl: ttl}, nil
}

// Save writes the user's draft, replacing any previous one.
func (s *Store) Save(ctx context.Context, userID string, d *Draft) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if d == nil {
		return fmt.Errorf("draft is required")
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.DraftKey(userID), payload, s.ttl); err != nil {
		return fmt.Errorf("storing draft: %w", err)
	}
	return nil
}

// Load returns the user's draft, or a NOT_FOUND error when none exists.
func (s *Store) Load(ctx context.Context, userID string) (*Draft, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	raw, err := s.store.Get(ctx, s.keyer.DraftKey(userID))
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no draft in progress")
		}
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return &d, nil
}

// Delete removes the user's draft. Deleting an absent draft is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if err := s.store.Del(ctx, s.keyer.DraftKey(userID)); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}
