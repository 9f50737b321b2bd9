package testutil

import (
	"context"
	"io"
	"log"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StartRedis launches a temporary Redis container and returns a ready
// client plus a cleanup function. The test is skipped when docker is
// not available.
func StartRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	containerName := "storefront-redis-" + uuid.NewString()
	runArgs := []string{
		"run", "--rm", "-d",
		"-P",
		"--name", containerName,
		"redis:7-alpine",
	}

	if err := exec.CommandContext(ctx, "docker", runArgs...).Run(); err != nil {
		t.Fatalf("start redis container: %v", err)
	}

	var client *redis.Client
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
		_ = exec.Command("docker", "stop", containerName).Run()
	}

	hostPort := waitForPort(ctx, t, containerName, "6379/tcp")
	client = redis.NewClient(&redis.Options{Addr: "localhost:" + hostPort})

	deadline := time.Now().Add(30 * time.Second)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return client, cleanup
		}

		if time.Now().After(deadline) {
			cleanup()
			t.Fatalf("timeout connecting to redis: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(io.Discard, "", 0)
}
