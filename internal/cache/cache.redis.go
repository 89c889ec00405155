package cache

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "aqua:query:"
	redisGenPrefix = "aqua:gen:"
)

// The braces hash-tag a value and its generation into one cluster slot, as the
// script touches both.
func valueKey(key string) string { return redisKeyPrefix + "{" + key + "}" }
func genKey(key string) string   { return redisGenPrefix + "{" + key + "}" }

// setIfGeneration writes KEYS[1] only when the counter at KEYS[2] still holds
// ARGV[1]. ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// RedisCache shares the query cache between dashboard instances.
type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, valueKey(key)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, valueKey(key), value, ttl).Err()
}

func (r *RedisCache) Generation(ctx context.Context, key string) (uint64, error) {
	gen, err := r.client.Get(ctx, genKey(key)).Uint64()
	if stderrors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *RedisCache) SetIfGeneration(ctx context.Context, key string, value []byte, ttl time.Duration, gen uint64) (bool, error) {
	ms := int64(0)
	if ttl > 0 {
		ms = max(ttl.Milliseconds(), 1)
	}
	keys := []string{valueKey(key), genKey(key)}
	n, err := setIfGeneration.Run(ctx, r.client, keys, strconv.FormatUint(gen, 10), value, ms).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Delete advances the generation of each key before evicting it, so a write
// racing the eviction either fails its generation check or is deleted.
func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, genKey(k))
			pipe.Del(ctx, valueKey(k))
		}
		return nil
	})
	return err
}
