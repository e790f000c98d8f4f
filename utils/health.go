package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func setHealthStatus(s HealthStatus) {
	mu.Lock()
	currentHealth = s
	mu.Unlock()
}

// StartHealthMonitor runs one health check immediately and then on the given
// cron schedule (e.g. "@every 1m"). The returned scheduler must be stopped on
// shutdown.
func StartHealthMonitor(schedule string, redisClients []*redis.Client, mongoClient *mongo.Client) (*cron.Cron, error) {
	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisHealth := make([]bool, 0, len(redisClients))
		for _, client := range redisClients {
			err := client.Ping(ctx).Err()
			redisHealth = append(redisHealth, err == nil)
		}

		mongoHealthy := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil
		if !mongoHealthy {
			GetLogger().Warn("health: mongo ping failed")
		}

		setHealthStatus(HealthStatus{
			Mongo:     mongoHealthy,
			Redis:     redisHealth,
			CheckedAt: time.Now(),
		})
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, check); err != nil {
		return nil, fmt.Errorf("health monitor: invalid schedule %q: %w", schedule, err)
	}
	check()
	c.Start()
	GetLogger().Info("health monitor started", zap.String("schedule", schedule))
	return c, nil
}
