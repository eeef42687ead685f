// Package store provides the redis and sqlite Storage backends.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	commsig "github.com/commsiglabs/commsig-go"
)

// RedisStorage implements commsig.Storage on Redis. Profiles and
// assessments are JSON strings under "{prefix}:profile:{user}" and
// "{prefix}:assessment:{id}", purchases are a list per user, and the
// assessment dedup index is one key per (user, content hash).
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	// Prefix for every key, default "commsig".
	Prefix string
	// TTL for profile and assessment keys, 0 = no expiry.
	TTL time.Duration
}

// NewRedisStorage creates a Storage backed by Redis. Works with Client,
// ClusterClient and Ring.
func NewRedisStorage(client redis.UniversalClient, config ...RedisConfig) *RedisStorage {
	cfg := RedisConfig{Prefix: "commsig"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "commsig"
	}
	return &RedisStorage{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
	}
}

func (r *RedisStorage) profileKey(userID string) string {
	return fmt.Sprintf("%s:profile:%s", r.prefix, userID)
}

func (r *RedisStorage) assessmentKey(id string) string {
	return fmt.Sprintf("%s:assessment:%s", r.prefix, id)
}

func (r *RedisStorage) assessmentHashKey(userID string, hash uint64) string {
	return fmt.Sprintf("%s:assessment_hash:%s:%d", r.prefix, userID, hash)
}

func (r *RedisStorage) purchasesKey(userID string) string {
	return fmt.Sprintf("%s:purchases:%s", r.prefix, userID)
}

func (r *RedisStorage) Profile(ctx context.Context, userID string) (*commsig.ProfileRecord, error) {
	raw, err := r.client.Get(ctx, r.profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, commsig.ErrNotFound
		}
		return nil, fmt.Errorf("store: get profile: %w", err)
	}
	var rec commsig.ProfileRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("store: decode profile: %w", err)
	}
	return &rec, nil
}

func (r *RedisStorage) PutProfile(ctx context.Context, rec *commsig.ProfileRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode profile: %w", err)
	}
	if err := r.client.Set(ctx, r.profileKey(rec.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store: put profile: %w", err)
	}
	return nil
}

func (r *RedisStorage) Assessment(ctx context.Context, id string) (*commsig.AssessmentRecord, error) {
	return r.assessmentAt(ctx, r.assessmentKey(id))
}

func (r *RedisStorage) AssessmentByHash(ctx context.Context, userID string, hash uint64) (*commsig.AssessmentRecord, error) {
	id, err := r.client.Get(ctx, r.assessmentHashKey(userID, hash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, commsig.ErrNotFound
		}
		return nil, fmt.Errorf("store: get assessment hash: %w", err)
	}
	return r.assessmentAt(ctx, r.assessmentKey(id))
}

func (r *RedisStorage) assessmentAt(ctx context.Context, key string) (*commsig.AssessmentRecord, error) {
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, commsig.ErrNotFound
		}
		return nil, fmt.Errorf("store: get assessment: %w", err)
	}
	var rec commsig.AssessmentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("store: decode assessment: %w", err)
	}
	return &rec, nil
}

func (r *RedisStorage) PutAssessment(ctx context.Context, rec *commsig.AssessmentRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode assessment: %w", err)
	}
	if err := r.client.Set(ctx, r.assessmentKey(rec.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store: put assessment: %w", err)
	}
	if err := r.client.Set(ctx, r.assessmentHashKey(rec.UserID, rec.ContentHash), rec.ID, r.ttl).Err(); err != nil {
		return fmt.Errorf("store: put assessment hash: %w", err)
	}
	return nil
}

func (r *RedisStorage) Purchases(ctx context.Context, userID string) ([]*commsig.PurchaseRecord, error) {
	items, err := r.client.LRange(ctx, r.purchasesKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list purchases: %w", err)
	}
	out := make([]*commsig.PurchaseRecord, 0, len(items))
	for _, raw := range items {
		var rec commsig.PurchaseRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("store: decode purchase: %w", err)
		}
		out = append(out, &rec)
	}
	return out, nil
}

func (r *RedisStorage) PutPurchase(ctx context.Context, rec *commsig.PurchaseRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode purchase: %w", err)
	}
	if err := r.client.RPush(ctx, r.purchasesKey(rec.UserID), data).Err(); err != nil {
		return fmt.Errorf("store: put purchase: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

// Compile-time interface check.
var _ commsig.Storage = (*RedisStorage)(nil)
