// Package testutil provides testing utilities for the resume rating service.
// It includes a RabbitMQ testcontainer, document fixtures, a fake Gemini
// endpoint and HTTP helpers.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultRabbitMQImage is used by StartRabbitMQ.
const DefaultRabbitMQImage = "rabbitmq:3.13-alpine"

// StartRabbitMQ starts a throwaway broker and returns its AMQP URL.
// The container is terminated when the test finishes.
//
// Usage:
//
//	func TestPublish(t *testing.T) {
//	    testutil.SkipIfShort(t)
//	    url := testutil.StartRabbitMQ(t, context.Background())
//	    ...
//	}
func StartRabbitMQ(t *testing.T, ctx context.Context) string {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        DefaultRabbitMQImage,
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start rabbitmq container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}
