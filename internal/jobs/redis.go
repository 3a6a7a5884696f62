package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mediaforge/internal/pkg/errors"
)

const redisKeyPrefix = "mediaforge:jobs:"

// RedisStore keeps async job state in Redis so status polls survive process
// restarts. Records expire after the configured TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Put(ctx context.Context, j *Job) error {
	raw, err := json.Marshal(j)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+j.ID, raw, s.ttl).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeStorage, "jobs.redis.put", "store job state")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Job, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFound("job", id)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeStorage, "jobs.redis.get", "load job state")
	}

	var j Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeStorage, "jobs.redis.get", "decode job state")
	}
	return &j, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+id).Err()
}
