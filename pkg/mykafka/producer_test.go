package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/kaos_shop/pkg/config"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	assert.Error(t, err)
}

func testBrokers(t *testing.T) []string {
	t.Helper()
	brokers := config.CSV(os.Getenv("KAFKA_TEST_BROKERS"))
	if len(brokers) == 0 {
		t.Skip("KAFKA_TEST_BROKERS is required for tests")
	}
	return brokers
}

func ensureTopics(t *testing.T, broker string, topics ...string) {
	t.Helper()

	conn, err := kafka.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	admin, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer admin.Close()

	var cfgs []kafka.TopicConfig
	for _, tp := range topics {
		cfgs = append(cfgs, kafka.TopicConfig{
			Topic:             tp,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}

	err = admin.CreateTopics(cfgs...)
	if err != nil && !strings.Contains(err.Error(), "Topic with this name already exists") {
		require.NoError(t, err)
	}
}

func consumeNextEvent(t *testing.T, broker, topic string, produce func()) kafka.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	conn, err := kafka.DialLeader(ctx, "tcp", broker, topic, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	produce()

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	return m
}

func TestProducer_PublishEvent(t *testing.T) {
	brokers := testBrokers(t)
	ensureTopics(t, brokers[0], "cart_events")

	p, err := NewProducer(brokers)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	m := consumeNextEvent(t, brokers[0], "cart_events", func() {
		require.NoError(t, p.PublishEvent(context.Background(), "cart_events", "sid-1", map[string]any{
			"type":      "cart_item_added",
			"productID": "1",
		}))
	})

	assert.Equal(t, "sid-1", string(m.Key))
	var event map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &event))
	assert.Equal(t, "cart_item_added", event["type"])
	assert.Equal(t, "1", event["productID"])
}
