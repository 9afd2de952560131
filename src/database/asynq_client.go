package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// NewAsynqClient สร้าง client เฉพาะเมื่อมี Redis
func NewAsynqClient(redisAddr string, redisUp bool) *asynq.Client {
	if !redisUp || redisAddr == "" {
		log.Println("⚠️ Redis not available. Asynq client will not be initialized.")
		return nil
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	log.Println("✅ Asynq Client initialized successfully")
	return client
}
