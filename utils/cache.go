package utils

import (
	"context"
	"log"
	"time"

	"stopover/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds active booking sessions.
	SessionCacheClient *redis.Client
	// ConversationCacheClient is the read cache in front of the durable
	// conversation store.
	ConversationCacheClient *redis.Client
)

// InitRedis initializes both Redis clients and verifies connectivity.
func InitRedis() {
	SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
	ConversationCacheClient = newRedisClient(config.AppConfig.RedisConversationDB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, client := range []*redis.Client{SessionCacheClient, ConversationCacheClient} {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	}
}

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// GetSessionCacheClient returns the booking session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
	}
	return SessionCacheClient
}

// GetConversationCacheClient returns the conversation cache client.
func GetConversationCacheClient() *redis.Client {
	if ConversationCacheClient == nil {
		ConversationCacheClient = newRedisClient(config.AppConfig.RedisConversationDB)
	}
	return ConversationCacheClient
}
