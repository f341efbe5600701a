package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/repository/repositorytest"
)

// setupTestRedis connects to REDIS_URL, skipping when it is not set
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL environment variable not set, skipping Redis integration tests")
	}

	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err, "Failed to parse Redis URL")

	client := redis.NewClient(opt)
	require.NoError(t, client.Ping(context.Background()).Err(), "Failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCharacterRepository_Integration(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	namespace := fmt.Sprintf("test:%d:", time.Now().UnixNano())
	t.Cleanup(func() {
		keys, err := client.Keys(ctx, namespace+"*").Result()
		if err == nil && len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})

	repositorytest.Run(t, NewCharacterRepositoryWithPrefix(client, namespace))
}
