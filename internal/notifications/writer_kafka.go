package notifications

import (
	"context"

	"github.com/IBM/sarama"
	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// KafkaWriter publishes notification events to a kafka topic.
type KafkaWriter struct {
	producer sarama.SyncProducer
}

func NewKafkaWriter(brokers []string, cfg *sarama.Config) (*KafkaWriter, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
		cfg.Producer.Return.Successes = true
	}

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &KafkaWriter{producer: producer}, nil
}

func (k *KafkaWriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	payload, err := e.MarshalJSON()
	if err != nil {
		return err
	}

	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(e.ID()),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (k *KafkaWriter) Close(_ context.Context) error {
	return k.producer.Close()
}
