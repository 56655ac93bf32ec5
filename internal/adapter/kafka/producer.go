package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

// Producer publishes domain events through a shared kafka-go Writer. The
// writer creates topics on demand so a fresh broker works out of the box.
type Producer struct {
	writer *kafkago.Writer
	logger ports.LoggerPort
}

func NewProducer(brokers []string, logger ports.LoggerPort) *Producer {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error("kafka writer: "+msg, map[string]interface{}{
				"args": args,
			})
		}),
	}

	logger.Info("Kafka producer initialized", map[string]interface{}{
		"brokers": brokers,
	})

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

var _ ports.EventPublisher = (*Producer)(nil)

func (p *Producer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: time.Now(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
