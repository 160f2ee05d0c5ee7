package draft

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store caches in-progress checkout form drafts so a dropped connection does
// not lose typed data. It is a cache, not a source of truth: every operation
// is best-effort and a miss returns (nil, nil).
type Store interface {
	Save(ctx context.Context, sessionID string, fields map[string]string) error
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	Delete(ctx context.Context, sessionID string) error
}

const keyPrefix = "checkout:draft:"

// RedisStore keeps drafts in Redis with a TTL.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{rdb: rdb, ttl: ttl, logger: logger.Named("draft.redis")}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, fields map[string]string) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("draft save failed", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Warn("draft load failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err()
}

// MemoryStore is the in-process fallback when Redis is not configured.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]map[string]string)}
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, fields map[string]string) error {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = copied
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := make(map[string]string, len(stored))
	for k, v := range stored {
		copied[k] = v
	}
	return copied, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}
