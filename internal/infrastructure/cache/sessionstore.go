package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chroma-excellence/chromaqa/internal/domain/portal"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
)

const sessionKeyPrefix = "portal:session:"

// expiredRetention keeps a session record around past its expiry so a
// validate on a stale token reads an expired session instead of a
// missing one. Redis reclaims the record afterwards without a sweep.
const expiredRetention = 24 * time.Hour

// RedisSessionStore keeps portal sessions in Redis with a key TTL
// derived from the session's own expiry.
type RedisSessionStore struct {
	client *redis.Client
	clock  clock.Clock
}

func NewRedisSessionStore(client *redis.Client, clk clock.Clock) *RedisSessionStore {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &RedisSessionStore{
		client: client,
		clock:  clk,
	}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *portal.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(session.Token), data, s.storageTTL(session)).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*portal.Session, error) {
	data, err := s.client.Get(ctx, s.buildKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session from redis: %w", err)
	}

	var session portal.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.buildKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) storageTTL(session *portal.Session) time.Duration {
	remaining := session.RemainingTTL(s.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining + expiredRetention
}

func (s *RedisSessionStore) buildKey(token string) string {
	return sessionKeyPrefix + token
}
