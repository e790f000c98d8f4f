// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"washdesk/config"

	"github.com/go-redis/redis/v8"
)

// LedgerClient is the Redis client backing the chat extraction ledger.
var LedgerClient *redis.Client

// InitLedgerCache initializes the Redis client for the extraction ledger (using DB from AppConfig).
func InitLedgerCache() {
	LedgerClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLedgerDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LedgerClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Ledger): %v", err)
	}
}

// GetLedgerClient returns the Redis client for the extraction ledger.
func GetLedgerClient() *redis.Client {
	if LedgerClient == nil {
		InitLedgerCache()
	}
	return LedgerClient
}
