//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.5.0"

// startKafka runs a single-node KRaft broker for the duration of the test and
// returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, kafkaImage, tckafka.WithClusterID("impact-test"))
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start kafka container")

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockScenario is one entry of the scenario request fixture.
type mockScenario struct {
	Name    string
	Payload json.RawMessage
}

// loadMockData reads data/mock/impact_scenarios.json. Payloads are published
// verbatim, including the extra "name" field.
func loadMockData(t *testing.T) []mockScenario {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "data", "mock", "impact_scenarios.json"))
	require.NoError(t, err)

	var raws []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raws))

	out := make([]mockScenario, 0, len(raws))
	for _, raw := range raws {
		var meta struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(raw, &meta))
		out = append(out, mockScenario{Name: meta.Name, Payload: raw})
	}
	return out
}
