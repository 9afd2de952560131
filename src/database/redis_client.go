package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis เชื่อมต่อ Redis ถ้าไม่ได้ตั้ง REDIS_URI หรือ ping ไม่ผ่านจะคืน nil
// ระบบยังทำงานได้ (lock ในโปรเซส และไม่มี cache)
func NewRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		log.Println("⚠️ REDIS_URI not set. Running without Redis.")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr, // เช่น localhost:6379
		Password: "",
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Failed to connect Redis:", err)
		_ = client.Close()
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}
