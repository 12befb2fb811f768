package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlots stores each slot as a plain redis string under Prefix+key.
type RedisSlots struct {
	client  *redis.Client
	Prefix  string
	timeout time.Duration
}

func NewRedisSlots(client *redis.Client) *RedisSlots {
	return &RedisSlots{client: client, Prefix: "postboard:", timeout: 2 * time.Second}
}

func (r *RedisSlots) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	val, err := r.client.Get(ctx, r.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisSlots) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Set(ctx, r.Prefix+key, value, 0).Err()
}

func (r *RedisSlots) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Del(ctx, r.Prefix+key).Err()
}

func (r *RedisSlots) Close() error {
	return r.client.Close()
}
