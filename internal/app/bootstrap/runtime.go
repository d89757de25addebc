package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/wolfman30/hotel-booking-assistant/internal/bookings"
	appconfig "github.com/wolfman30/hotel-booking-assistant/internal/config"
	"github.com/wolfman30/hotel-booking-assistant/internal/conversation"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// AWSConfigLoader defers AWS SDK setup until a component actually needs it.
type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore keeps sessions in Redis when available and in process
// memory otherwise.
func BuildSessionStore(redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) conversation.SessionStore {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient == nil {
		logger.Warn("redis not configured; chat sessions are kept in memory")
		return conversation.NewMemorySessionStore()
	}
	var ttl time.Duration
	if cfg != nil {
		ttl = cfg.SessionTTL
	}
	return conversation.NewRedisSessionStore(redisClient, ttl, otel.Tracer("hotel.internal.conversation"))
}

// BuildBookingService persists bookings in Postgres when DATABASE_URL is set,
// falling back to memory. The returned pool is nil in the fallback case.
func BuildBookingService(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*bookings.Service, *pgxpool.Pool) {
	if logger == nil {
		logger = logging.Default()
	}
	pool := ConnectPostgresPool(ctx, cfg, logger)
	if pool == nil {
		logger.Warn("database not configured; bookings are kept in memory")
		return bookings.NewService(bookings.NewInMemoryRepository(), logger), nil
	}
	return bookings.NewService(bookings.NewPostgresRepository(pool), logger), pool
}

// ConnectPostgresPool opens and pings a pgx pool, returning nil on failure.
func ConnectPostgresPool(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *pgxpool.Pool {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres not reachable", "error", err)
		pool.Close()
		return nil
	}
	return pool
}
