package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// ลบ key เฉพาะเมื่อ owner token ตรงกัน
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker lock ราย key ข้ามหลาย instance ด้วย SET NX + TTL
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, wait: ttl, retry: 50 * time.Millisecond}
}

// Lock รอจนได้ lock หรือหมดเวลา wait / ctx ถูกยกเลิก
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := fmt.Sprintf("lock:%s", key)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				// ใช้ context ใหม่ เผื่อ ctx ของ request ถูกยกเลิกไปแล้ว
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

// CacheGet คืน "", false เมื่อไม่มี client หรือไม่พบ key
func CacheGet(ctx context.Context, client *redis.Client, key string) (string, bool) {
	if client == nil {
		return "", false
	}
	v, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func CacheSet(ctx context.Context, client *redis.Client, key, value string, ttl time.Duration) {
	if client == nil {
		return
	}
	_ = client.Set(ctx, key, value, ttl).Err()
}
