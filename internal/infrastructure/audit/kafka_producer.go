package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/quantgov/mrm/internal/config"
	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/pkg/logger"
)

// KafkaProducer streams audit events to a Kafka topic. Events are keyed by
// subject id so all events for one model land on the same partition.
type KafkaProducer struct {
	writer *kafka.Writer
	log    logger.Logger
}

// NewKafkaProducer creates the Kafka-backed AuditService.
func NewKafkaProducer(cfg config.KafkaConfig, log logger.Logger) service.AuditService {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AuditTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		BatchSize:    cfg.BatchSize,
		BatchTimeout: time.Duration(cfg.BatchTimeout) * time.Millisecond,
	}
	return &KafkaProducer{
		writer: writer,
		log:    log.WithComponent("kafka_audit"),
	}
}

// LogEvent publishes an audit event to the audit topic.
func (p *KafkaProducer) LogEvent(ctx context.Context, event *models.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error(ctx, "failed to marshal audit event", err,
			logger.String("event_id", event.EventID),
		)
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SubjectID),
		Value: payload,
	})
	if err != nil {
		p.log.Error(ctx, "failed to publish audit event", err,
			logger.String("event_id", event.EventID),
			logger.String("event_type", string(event.EventType)),
		)
	}
	return err
}

// Close flushes and closes the underlying Kafka writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
