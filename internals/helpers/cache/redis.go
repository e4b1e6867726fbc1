package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "videoach:cache:"

// Redis keeps each entry as a plain key and each tag as a set of entry keys.
type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis { return &Redis{Client: client} }

func entryKey(key string) string { return keyPrefix + "entry:" + key }
func tagKey(tag string) string   { return keyPrefix + "tag:" + tag }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.Client.Get(ctx, entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration) error {
	ek := entryKey(key)
	_, err := r.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, ek, value, ttl)
		for _, t := range tags {
			p.SAdd(ctx, tagKey(t), ek)
		}
		return nil
	})
	return err
}

func (r *Redis) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, t := range tags {
		tk := tagKey(t)
		members, err := r.Client.SMembers(ctx, tk).Result()
		if err != nil {
			return fmt.Errorf("smembers %s: %w", tk, err)
		}
		keys := append(members, tk)
		if err := r.Client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("del %s: %w", tk, err)
		}
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.InvalidateTags(ctx, AllTag)
}

// Connect pings redis; callers fall back to the memory store on error.
func Connect(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		PoolSize: 10,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Printf("[CACHE] connected to redis at %s", addr)
	return client, nil
}

// New picks the store from configuration: Noop when disabled, Redis when reachable,
// Memory otherwise.
func New(noCache bool, redisAddr, redisPassword string) Store {
	if noCache {
		log.Println("[CACHE] disabled (NO_CACHE)")
		return Noop{}
	}
	if redisAddr == "" {
		log.Println("[CACHE] REDIS_ADDR not set, using in-memory cache")
		return NewMemory()
	}
	client, err := Connect(redisAddr, redisPassword)
	if err != nil {
		log.Printf("⚠️ [CACHE] redis unreachable (%v), using in-memory cache", err)
		return NewMemory()
	}
	return NewRedis(client)
}
