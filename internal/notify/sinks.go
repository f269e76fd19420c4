package notify

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// Banco
// ======================================================

type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Deliver(ctx context.Context, n models.Notification) error {
	n.ID = 0
	return s.db.WithContext(ctx).Create(&n).Error
}

// ======================================================
// Kafka
// ======================================================

// KafkaSink publica cada notificação como JSON, com o destinatário como
// chave para manter a ordem por pessoa.
type KafkaSink struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  brokers,
			Balancer: &kafka.Hash{},
		}),
		topic: topic,
	}
}

func (s *KafkaSink) Deliver(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic: s.topic,
		Key:   []byte(strconv.FormatUint(uint64(n.RecipientID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.Type)},
			{Key: "related_entity", Value: []byte(n.RelatedEntity)},
		},
	})
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// ======================================================
// Log
// ======================================================

type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(ctx context.Context, n models.Notification) error {
	s.logger.Info().
		Uint("recipient_id", n.RecipientID).
		Str("type", n.Type).
		Str("title", n.Title).
		Str("message", n.Message).
		Msg("notification")
	return nil
}
