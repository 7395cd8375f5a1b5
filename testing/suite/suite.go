package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const maxWaitDuration = 30 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Redis   *miniredis.Miniredis
	Storage *redis.Client
}

// New - starts an in-memory Redis for the test and returns a client connected to it.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("could not start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})

	if err = redisClient.Ping(ctx).Err(); err != nil {
		server.Close()
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = redisClient.Close()
		server.Close()
	})

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Redis:   server,
		Storage: redisClient,
	}
}
