// Package events broadcasts catalog changes to Kafka for downstream
// consumers such as click trackers and feed rebuilds. Publishing is
// best-effort and never fails a catalog operation.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/pkg/requestid"
)

type Action string

const (
	ActionCreated Action = "product_created"
	ActionDeleted Action = "product_deleted"
)

// Event is the JSON payload written to the product events topic, keyed by
// product id.
type Event struct {
	Action    Action          `json:"action"`
	ProductID string          `json:"product_id"`
	Product   *models.Product `json:"product,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	EmittedAt time.Time       `json:"emitted_at"`
}

type Publisher interface {
	ProductCreated(ctx context.Context, product *models.Product)
	ProductDeleted(ctx context.Context, id string)
	Close() error
}

// NewPublisher builds the Kafka publisher, or a noop one when Kafka is
// disabled.
func NewPublisher(cfg *config.Config, log *zap.Logger) (Publisher, error) {
	if !cfg.Kafka.Enabled {
		return noopPublisher{}, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = false
	saramaConfig.Producer.Return.Errors = true

	producer, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to start kafka producer: %w", err)
	}

	return newKafkaPublisher(producer, cfg.Kafka.Topic, log), nil
}

type kafkaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	log      *zap.Logger
	done     chan struct{}
}

func newKafkaPublisher(producer sarama.AsyncProducer, topic string, log *zap.Logger) *kafkaPublisher {
	p := &kafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log,
		done:     make(chan struct{}),
	}
	go p.drainErrors()
	return p
}

func (p *kafkaPublisher) drainErrors() {
	for err := range p.producer.Errors() {
		p.log.Warn("product event not delivered", zap.Error(err))
	}
	close(p.done)
}

func (p *kafkaPublisher) publish(ctx context.Context, event Event) {
	event.RequestID, _ = requestid.FromContext(ctx)
	event.EmittedAt = time.Now().UTC()
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("failed to encode product event", zap.Error(err))
		return
	}
	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ProductID),
		Value: sarama.ByteEncoder(payload),
	}
}

func (p *kafkaPublisher) ProductCreated(ctx context.Context, product *models.Product) {
	p.publish(ctx, Event{Action: ActionCreated, ProductID: product.ID, Product: product})
}

func (p *kafkaPublisher) ProductDeleted(ctx context.Context, id string) {
	p.publish(ctx, Event{Action: ActionDeleted, ProductID: id})
}

// Close flushes pending messages and waits for the error drain to finish.
func (p *kafkaPublisher) Close() error {
	p.producer.AsyncClose()
	<-p.done
	return nil
}

// noopPublisher is used when Kafka is disabled.
type noopPublisher struct{}

func (noopPublisher) ProductCreated(context.Context, *models.Product) {}
func (noopPublisher) ProductDeleted(context.Context, string)          {}
func (noopPublisher) Close() error                                    { return nil }
