package storage

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding configuration values
const DefaultRedisKey = "insecticide:config"

// RedisConfigStore keeps configuration in a Redis hash
type RedisConfigStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisConfigStore uses client for storage. An empty key uses DefaultRedisKey.
func NewRedisConfigStore(client redis.UniversalClient, key string) *RedisConfigStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisConfigStore{client: client, key: key}
}

// OpenRedisConfigStore connects to addr and checks the connection
func OpenRedisConfigStore(ctx context.Context, addr string) (*RedisConfigStore, error) {
	if addr == "" {
		return nil, persistenceErr("open", errors.New("empty redis address"))
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, persistenceErr("open", errors.Wrapf(err, "ping redis at %s", addr))
	}
	return NewRedisConfigStore(client, ""), nil
}

func (s *RedisConfigStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.HGet(ctx, s.key, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, persistenceErr("get", errors.Wrapf(err, "hget %q", key))
	}
	return val, true, nil
}

func (s *RedisConfigStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.key, key, value).Err(); err != nil {
		return persistenceErr("set", errors.Wrapf(err, "hset %q", key))
	}
	return nil
}

// SetMany writes all values inside a MULTI/EXEC transaction
func (s *RedisConfigStore) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.HSet(ctx, s.key, k, values[k])
		}
		return nil
	})
	if err != nil {
		return persistenceErr("set", errors.Wrap(err, "exec transaction"))
	}
	return nil
}

func (s *RedisConfigStore) All(ctx context.Context) (map[string]string, error) {
	vals, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, persistenceErr("list", errors.Wrap(err, "hgetall"))
	}
	return vals, nil
}

func (s *RedisConfigStore) Close() error {
	return persistenceErr("close", s.client.Close())
}
