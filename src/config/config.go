package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config ค่าตั้งค่าทั้งหมดของระบบ อ่านจาก .env / environment
type Config struct {
	AppURI          string
	AllowedOrigins  string
	MongoURI        string
	MongoDB         string
	RedisURI        string
	JWTSecret       string
	GeocoderURL     string
	GeocoderTimeout time.Duration
	LockTTL         time.Duration
	AbsenceCron     string
	Location        *time.Location
}

var ErrMissingMongoURI = errors.New("MONGO_URI environment variable not set")

// Load โหลด .env (ถ้ามี) แล้วอ่านค่าจาก environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}
	return FromEnv()
}

// FromEnv อ่านค่าจาก environment อย่างเดียว
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppURI:          getEnv("APP_URI", "8888"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "attendance"),
		RedisURI:        os.Getenv("REDIS_URI"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GeocoderURL:     os.Getenv("GEOCODER_URL"),
		GeocoderTimeout: getDuration("GEOCODER_TIMEOUT", 3*time.Second),
		LockTTL:         getDuration("LOCK_TTL", 10*time.Second),
		AbsenceCron:     getEnv("ABSENCE_CRON", "55 23 * * *"),
	}
	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}

	tz := getEnv("APP_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("⚠️ invalid APP_TIMEZONE %q, using Local: %v", tz, err)
		loc = time.Local
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration รับทั้งรูปแบบ "3s" และจำนวนวินาทีล้วน
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("⚠️ invalid %s=%q, using %s", key, v, fallback)
	return fallback
}
