package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/rogerio-castellano/appointment-tracker/internal/config"
)

type ProduceMsg struct {
	Topic        string
	Headers      map[string]string
	Payload      []byte
	PartitionKey *string
}

type Producer interface {
	Produce(ctx context.Context, msg ProduceMsg) error
}

var _ Producer = (*KafkaProducer)(nil)

type KafkaProducer struct {
	cl *kgo.Client
}

func NewKafkaProducer(ctx context.Context, cfg config.Kafka) (*KafkaProducer, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Addresses...),
		kgo.AllowAutoTopicCreation(),
		kgo.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := cl.Ping(pingCtx); err != nil {
		cl.Close()
		return nil, fmt.Errorf("ping kafka: %w", err)
	}

	return &KafkaProducer{cl: cl}, nil
}

func (p *KafkaProducer) Produce(ctx context.Context, msg ProduceMsg) error {
	var msgErr error
	doneChan := make(chan struct{})
	promise := func(r *kgo.Record, err error) {
		msgErr = err
		close(doneChan)
	}

	p.cl.Produce(ctx, buildProduceRecord(msg), promise)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-doneChan:
		return msgErr
	}
}

func (p *KafkaProducer) Close() {
	p.cl.Close()
}

func buildProduceRecord(msg ProduceMsg) *kgo.Record {
	headers := make([]kgo.RecordHeader, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}

	r := &kgo.Record{
		Topic:   msg.Topic,
		Value:   msg.Payload,
		Headers: headers,
	}
	if msg.PartitionKey != nil {
		r.Key = []byte(*msg.PartitionKey)
	}
	return r
}

type event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// KafkaNotifier publishes every alert as a JSON event on one topic.
type KafkaNotifier struct {
	producer Producer
	topic    string
}

func NewKafkaNotifier(producer Producer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (k *KafkaNotifier) publish(ctx context.Context, eventType string, key *string, data any) error {
	payload, err := json.Marshal(event{Type: eventType, Data: data})
	if err != nil {
		return err
	}
	err = k.producer.Produce(ctx, ProduceMsg{
		Topic:        k.topic,
		Headers:      map[string]string{"event-type": eventType},
		Payload:      payload,
		PartitionKey: key,
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}

func (k *KafkaNotifier) LowStock(ctx context.Context, a LowStockAlert) error {
	key := strconv.Itoa(a.ProductID)
	return k.publish(ctx, "low_stock", &key, a)
}

func (k *KafkaNotifier) LowStockDigest(ctx context.Context, alerts []LowStockAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	return k.publish(ctx, "low_stock_digest", nil, alerts)
}

func (k *KafkaNotifier) Ban(ctx context.Context, a BanAlert) error {
	return k.publish(ctx, "client_banned", &a.Target, a)
}

func (k *KafkaNotifier) DailyBanSummary(ctx context.Context, s BanSummary) error {
	return k.publish(ctx, "daily_ban_summary", nil, s)
}
