// Package eventbus consumes the upstream push events from Kafka. Handler
// failures are logged and the message is not requeued here: the broker's
// redelivery and the reconciliation sweep own recovery.
package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"golang.org/x/sync/errgroup"

	"github.com/facundo-gs/busqueda-api/config"
)

// MessageHandler processes one raw message from a topic.
type MessageHandler func(ctx context.Context, topic string, value []byte) error

type KafkaConsumer struct {
	consumer *kafka.Consumer
}

func NewKafkaConsumer(brokers, groupID string) (*KafkaConsumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":             brokers,
		"group.id":                      groupID,
		"auto.offset.reset":             "earliest",
		"enable.auto.commit":            true,
		"partition.assignment.strategy": "range",
	})
	if err != nil {
		return nil, fmt.Errorf("creando consumer kafka: %w", err)
	}
	return &KafkaConsumer{consumer: c}, nil
}

func (c *KafkaConsumer) Subscribe(topics []string) error {
	if err := c.consumer.SubscribeTopics(topics, nil); err != nil {
		return fmt.Errorf("suscribiendo a %v: %w", topics, err)
	}
	config.Logger.Infof("suscripto a tópicos: %v", topics)
	return nil
}

// Run polls until the context is cancelled, dispatching each message to a
// bounded pool of workers. The ingestion gateway already retries storage
// blips internally, so a handler error here is terminal for that delivery.
func (c *KafkaConsumer) Run(ctx context.Context, workers int, handler MessageHandler) error {
	if workers <= 0 {
		workers = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			config.Logger.Info("consumer detenido")
			return ctx.Err()
		default:
			msg, err := c.consumer.ReadMessage(100 * time.Millisecond)
			if err != nil {
				if kerr, ok := err.(kafka.Error); ok && kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				config.Logger.Errorf("error leyendo mensaje: %v", err)
				continue
			}

			topic := *msg.TopicPartition.Topic
			value := msg.Value
			g.Go(func() error {
				if err := handler(gctx, topic, value); err != nil {
					config.Logger.Errorf("error procesando evento de %s: %v", topic, err)
				}
				return nil
			})
		}
	}
}

func (c *KafkaConsumer) Close() error {
	if err := c.consumer.Close(); err != nil {
		return fmt.Errorf("cerrando consumer: %w", err)
	}
	config.Logger.Info("consumer kafka cerrado")
	return nil
}
