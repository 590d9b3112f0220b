package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
)

// Fixed field names under which the credential and identity snapshot are
// persisted. They are restored verbatim; there is no versioning.
const (
	fieldToken = "token"
	fieldUser  = "user"
)

// SessionRepository stores sessions as Redis hashes under session:<id>,
// expiring after the configured TTL.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, s *ports.Session) error {
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	key := r.key(s.ID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fieldToken, s.Token, fieldUser, string(userJSON))
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, id string) (*ports.Session, error) {
	fields, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	token, ok := fields[fieldToken]
	if !ok || token == "" {
		return nil, domain.ErrSessionNotFound
	}

	var user domain.User
	if err := json.Unmarshal([]byte(fields[fieldUser]), &user); err != nil {
		// A session whose identity cannot be decoded is unusable.
		return nil, domain.ErrSessionNotFound
	}

	return &ports.Session{ID: id, Token: token, User: user}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(id string) string {
	return "session:" + id
}
