package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill"
	wm_kafka "github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// PartitionKeyMetadata is the message metadata key used as the kafka partition key.
const PartitionKeyMetadata = "partition_key"

type Config struct {
	// ClusterConfig overrides the default sync producer config when set.
	ClusterConfig   *sarama.Config
	BrokerAddresses []string
	Topic           string
}

// Publisher writes JSON documents to a single topic.
type Publisher struct {
	publisher message.Publisher
	topic     string
}

// NewPublisher creates a kafka backed publisher. Messages are partitioned by the
// key passed to Publish so that events of one vehicle stay ordered.
func NewPublisher(cfg *Config) (*Publisher, error) {
	saramaPublisherConfig := wm_kafka.DefaultSaramaSyncPublisherConfig()
	if cfg.ClusterConfig != nil {
		saramaPublisherConfig.Version = cfg.ClusterConfig.Version
	}

	publisher, err := wm_kafka.NewPublisher(
		wm_kafka.PublisherConfig{
			Brokers:               cfg.BrokerAddresses,
			Marshaler:             wm_kafka.NewWithPartitioningMarshaler(partitionKey),
			OverwriteSaramaConfig: saramaPublisherConfig,
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return NewPublisherWith(publisher, cfg.Topic), nil
}

// NewPublisherWith wraps an existing watermill publisher.
func NewPublisherWith(publisher message.Publisher, topic string) *Publisher {
	return &Publisher{publisher: publisher, topic: topic}
}

// Publish marshals v to JSON and publishes it under the given partition key.
func (p *Publisher) Publish(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	msg := message.NewMessageWithContext(ctx, uuid.New().String(), payload)
	msg.Metadata.Set(PartitionKeyMetadata, key)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying publisher.
func (p *Publisher) Close() error {
	return p.publisher.Close()
}

func partitionKey(_ string, msg *message.Message) (string, error) {
	return msg.Metadata.Get(PartitionKeyMetadata), nil
}
