// README: Draft persistence; mirrors the in-memory draft so it survives the navigation to checkout.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("draft not found")

// Repository mirrors a session's draft across page navigations, the same way
// the browser's session storage carried the original orderInfo blob.
type Repository interface {
	Save(ctx context.Context, sessionID string, o Order) error
	Load(ctx context.Context, sessionID string) (Order, error)
	Delete(ctx context.Context, sessionID string) error
}

const keyPrefix = "keepify:draft:"

type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) Save(ctx context.Context, sessionID string, o Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return r.rdb.Set(ctx, keyPrefix+sessionID, payload, 0).Err()
}

func (r *RedisRepository) Load(ctx context.Context, sessionID string) (Order, error) {
	payload, err := r.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Initial(), ErrNotFound
		}
		return Initial(), err
	}
	var o Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return Initial(), fmt.Errorf("decode draft: %w", err)
	}
	return o, nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, keyPrefix+sessionID).Err()
}

// MemoryRepository keeps drafts in-process. Used in tests and as a fallback
// when Redis is not configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{drafts: make(map[string][]byte)}
}

func (r *MemoryRepository) Save(_ context.Context, sessionID string, o Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	r.mu.Lock()
	r.drafts[sessionID] = payload
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Load(_ context.Context, sessionID string) (Order, error) {
	r.mu.RLock()
	payload, ok := r.drafts[sessionID]
	r.mu.RUnlock()
	if !ok {
		return Initial(), ErrNotFound
	}
	var o Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return Initial(), fmt.Errorf("decode draft: %w", err)
	}
	return o, nil
}

func (r *MemoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.drafts, sessionID)
	r.mu.Unlock()
	return nil
}
