package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
)

// KafkaSink publishes workflow events to a Kafka topic. Messages are keyed by
// invoice ID so that one invoice's events stay ordered within a partition.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

var _ portsevents.AuditSink = (*KafkaSink)(nil)

// NewKafkaProducer dials the brokers with settings suited to audit delivery.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.ClientID = "vendor-invoicing"
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 200 * time.Millisecond
	config.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

func NewKafkaSink(producer sarama.SyncProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

// Record sends the event and waits for the broker acknowledgement.
func (k *KafkaSink) Record(_ context.Context, event domain.WorkflowEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(event.InvoiceID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
		Timestamp: event.Timestamp,
	}

	if _, _, err := k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish %s event to %s: %w", event.EventType, k.topic, err)
	}
	return nil
}

func (k *KafkaSink) Close() error {
	return k.producer.Close()
}
