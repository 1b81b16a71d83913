package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/vector-suitability-etl/internal/config"
	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
)

// Writer produces suitability products to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple suitability products to the
// sink topic in a single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, products []domain.SuitabilityProduct) error {
	if len(products) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(products))
	for i := range products {
		msg, err := serializeToMessage(products[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SuitabilityProduct into a Kafka message.
func serializeToMessage(product domain.SuitabilityProduct) (kafkago.Message, error) {
	data, err := json.Marshal(product)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize suitability product: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(product.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "species", Value: []byte(product.Species.Name)},
			{Key: "layers", Value: []byte(strconv.Itoa(len(product.Rates.Layers)))},
			{Key: "processed_at", Value: []byte(product.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
