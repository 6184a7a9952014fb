package database

import (
	"context"
	"os"
	"strconv"
	"time"

	"placetopay_checkout/internal/infrastructure/logging"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis creates a Redis client when REDIS_URL is set.
//
// Supported env vars:
//   - REDIS_URL (host:port; empty disables Redis)
//   - REDIS_PASSWORD (optional)
//   - REDIS_DB (default: 0)
//
// A nil client is returned when Redis is disabled or unreachable; callers fall
// back to running without the resolve lock.
func ConnectRedis(logger *logrus.Logger) *redis.Client {
	log := logging.Component(logger, "redis")

	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		log.Info("[database][redis] REDIS_URL not set; redis disabled")
		return nil
	}
	db, err := strconv.Atoi(getenvDefault("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", addr).Warn("[database][redis] ping failed; redis disabled")
		_ = client.Close()
		return nil
	}
	log.WithField("addr", addr).Info("[database][redis] client initialized")
	return client
}
