package e2e_test

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

type kafkaServer struct {
	container *kafka.KafkaContainer
	consumer  sarama.Consumer
}

// setupKafkaServer starts a single broker and creates topic with one partition
// so that every published message can be read back in order.
func setupKafkaServer(t *testing.T, topic string) *kafkaServer {
	t.Helper()

	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("test-cluster"),
	)
	if err != nil {
		t.Fatalf("Failed to start Kafka container: %v", err)
	}

	brokers, err := kafkaContainer.Brokers(ctx)
	if err != nil {
		t.Fatalf("Failed to get Kafka brokers: %v", err)
	}

	config := sarama.NewConfig()
	config.Version = sarama.V2_8_1_0

	admin, err := sarama.NewClusterAdmin(brokers, config)
	if err != nil {
		t.Fatalf("Failed to create cluster admin: %v", err)
	}
	defer admin.Close() //nolint:errcheck
	err = admin.CreateTopic(topic, &sarama.TopicDetail{NumPartitions: 1, ReplicationFactor: 1}, false)
	if err != nil {
		t.Fatalf("Failed to create topic %s: %v", topic, err)
	}

	consumer, err := sarama.NewConsumer(brokers, config)
	if err != nil {
		t.Fatalf("Failed to create consumer: %v", err)
	}

	return &kafkaServer{
		container: kafkaContainer,
		consumer:  consumer,
	}
}

// ReadMessages reads topic from the beginning until match returns true for a
// message or the timeout expires, and returns the matching message.
func (k *kafkaServer) ReadMessages(t *testing.T, topic string, timeout time.Duration, match func(*sarama.ConsumerMessage) bool) *sarama.ConsumerMessage {
	t.Helper()
	partition, err := k.consumer.ConsumePartition(topic, 0, sarama.OffsetOldest)
	require.NoError(t, err)
	defer partition.Close() //nolint:errcheck

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-partition.Messages():
			if match(msg) {
				return msg
			}
		case consumerErr := <-partition.Errors():
			t.Fatalf("Failed to consume %s: %v", topic, consumerErr)
		case <-deadline:
			t.Fatalf("No matching message on %s after %s", topic, timeout)
			return nil
		}
	}
}

// GetBrokerAddress returns the first broker address.
func (k *kafkaServer) GetBrokerAddress(t *testing.T) string {
	brokers, err := k.container.Brokers(t.Context())
	if err != nil {
		t.Fatalf("Failed to get Kafka brokers: %v", err)
	}
	if len(brokers) > 0 {
		return brokers[0]
	}
	t.Fatalf("No brokers found")
	return ""
}

func (k *kafkaServer) Close() error {
	if k.consumer != nil {
		_ = k.consumer.Close()
	}
	if k.container != nil {
		return k.container.Terminate(context.Background())
	}
	return nil
}
