package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/binderykit/bindery/pkg/errors"
)

// Redis key layout.
const (
	redisArtifactPrefix = "bindery:artifact:"
	redisRecentKey      = "bindery:artifacts:recent"
	redisRecentMax      = 100
)

// RedisIndex records artifact metadata in Redis. Entries expire via TTL set
// to the retention window, so the index never outlives the files the sweep
// removes.
type RedisIndex struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisIndex connects to Redis at addr. A non-positive retention falls
// back to DefaultRetention.
func NewRedisIndex(addr string, retention time.Duration) *RedisIndex {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisIndex{
		client:    redis.NewClient(&redis.Options{Addr: addr}),
		retention: retention,
	}
}

// Record stores the artifact metadata with the retention TTL and pushes it
// onto the recent list.
func (i *RedisIndex) Record(ctx context.Context, a Artifact) error {
	data, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding artifact metadata")
	}

	key := redisArtifactPrefix + a.ID
	if err := i.client.Set(ctx, key, data, i.retention).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "recording artifact %s", a.ID)
	}

	pipe := i.client.Pipeline()
	pipe.LPush(ctx, redisRecentKey, a.ID)
	pipe.LTrim(ctx, redisRecentKey, 0, redisRecentMax-1)
	pipe.Expire(ctx, redisRecentKey, i.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "updating recent artifact list")
	}
	return nil
}

// Recent returns up to n artifacts, newest first. IDs whose metadata has
// expired are skipped silently.
func (i *RedisIndex) Recent(ctx context.Context, n int) ([]Artifact, error) {
	if n <= 0 {
		return nil, nil
	}

	ids, err := i.client.LRange(ctx, redisRecentKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "listing recent artifacts")
	}

	artifacts := make([]Artifact, 0, len(ids))
	for _, id := range ids {
		data, err := i.client.Get(ctx, redisArtifactPrefix+id).Bytes()
		if err == redis.Nil {
			continue // expired
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "loading artifact %s", id)
		}
		var a Artifact
		if err := json.Unmarshal(data, &a); err != nil {
			continue // stale or corrupt entry
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// Close closes the Redis connection.
func (i *RedisIndex) Close() error {
	return i.client.Close()
}

// Ensure RedisIndex implements Index.
var _ Index = (*RedisIndex)(nil)
