package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ResultPublisher writes evaluation results to a Kafka topic keyed by zone id.
type ResultPublisher struct {
	writer messageWriter
}

// NewResultPublisher builds a publisher over a hash-balanced kafka-go writer.
func NewResultPublisher(brokers []string, topic string) (*ResultPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("results topic must not be empty")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &ResultPublisher{writer: w}, nil
}

// Publish sends one message per row in a single write call.
func (p *ResultPublisher) Publish(ctx context.Context, rows []models.EvaluationRow) error {
	if len(rows) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(rows))
	for _, r := range rows {
		value, err := json.Marshal(newResultMessage(r))
		if err != nil {
			return fmt.Errorf("encode result for zone %s: %w", r.ZoneID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(r.ZoneID),
			Value: value,
			Time:  r.TS,
			Headers: []kafka.Header{
				{Key: "severity", Value: []byte(r.Result.Severity)},
			},
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *ResultPublisher) Close() error {
	return p.writer.Close()
}
