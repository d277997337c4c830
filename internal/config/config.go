package config

import (
	"os"
	"strconv"
	"time"

	"github.com/GregMSThompson/steps-backend/internal/services"
	"github.com/GregMSThompson/steps-backend/internal/stats"
)

type SessionBackend string

const (
	SessionRedis  SessionBackend = "redis"
	SessionMemory SessionBackend = "memory"
)

type Config struct {
	ProjectID           string
	Region              string
	LogLevel            string
	Port                string
	SessionBackend      SessionBackend
	RedisAddr           string
	RedisDB             int
	RedisPasswordSecret string
	MemoryCacheBytes    int
	TokenTTL            time.Duration
	FitnessEndpoint     string
	Location            *time.Location
	DefaultDailyGoal    int64
	KMSKeyName          string
}

func New() *Config {
	return &Config{
		ProjectID:           os.Getenv("PROJECTID"),
		Region:              os.Getenv("REGION"),
		LogLevel:            os.Getenv("LOGLEVEL"),
		Port:                getEnv("PORT", "8080"),
		SessionBackend:      getSessionBackend(os.Getenv("SESSIONBACKEND")),
		RedisAddr:           getEnv("REDISADDR", "localhost:6379"),
		RedisDB:             getIntEnv("REDISDB", 0),
		RedisPasswordSecret: os.Getenv("REDISPASSWORDSECRET"),
		MemoryCacheBytes:    getIntEnv("MEMORYCACHEBYTES", 32*1024*1024),
		TokenTTL:            getDurationEnv("TOKENTTL", services.DefaultTokenTTL),
		FitnessEndpoint:     os.Getenv("FITNESSENDPOINT"),
		Location:            getLocation(os.Getenv("TIMEZONE")),
		DefaultDailyGoal:    int64(getIntEnv("DEFAULTDAILYGOAL", int(stats.DefaultDailyGoal))),
		KMSKeyName:          os.Getenv("KMSKEYNAME"),
	}
}

func getSessionBackend(env string) SessionBackend {
	switch env {
	case "memory":
		return SessionMemory
	default: // "redis"
		return SessionRedis
	}
}

// getLocation falls back to UTC for an empty or unknown zone name.
func getLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
