package repository

import (
	"context"

	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
	pkgkafka "SeriesVault/pkg/kafka"
)

// KafkaEventPublisher implements EventPublisher for Kafka. One event is
// emitted per completed ingestion, keyed by symbol so downstream
// consumers see per-symbol ordering.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates a Kafka ingest-event publisher.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) drepo.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishIngest(ctx context.Context, res *models.IngestResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(res.Symbol), res)
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
