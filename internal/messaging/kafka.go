package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/config"
	"github.com/MinghowYooo/nexus/internal/validation"
)

const (
	InteractionTopic    = "user-interactions"
	InteractionDLQTopic = "user-interactions-dlq"
	ConsumerGroup       = "interaction-processors"
)

// InteractionEvent is the wire form of a recorded interaction. Downstream
// consumers (analytics, profile rebuilds) read this topic; the API only
// writes to it.
type InteractionEvent struct {
	EventID    uuid.UUID  `json:"event_id"`
	UserID     string     `json:"user_id"`
	VideoID    string     `json:"video_id"`
	Action     string     `json:"action"`
	Score      float64    `json:"score"`
	SessionID  *uuid.UUID `json:"session_id,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	RetryCount int        `json:"retry_count"`
}

type KafkaProducer struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

type KafkaConsumer struct {
	reader *kafka.Reader
	logger *logrus.Logger
}

type MessageBus struct {
	producer  *KafkaProducer
	consumer  *KafkaConsumer
	dlqWriter *kafka.Writer
	logger    *logrus.Logger
}

func NewMessageBus(cfg *config.Config, logger *logrus.Logger) (*MessageBus, error) {
	producer := &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        InteractionTopic,
			Balancer:     &kafka.Hash{}, // Key by user id so a user's events stay ordered
			RequiredAcks: kafka.RequireOne,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
		logger: logger,
	}

	consumer := &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          InteractionTopic,
			GroupID:        ConsumerGroup,
			MinBytes:       10e3, // 10KB
			MaxBytes:       10e6, // 10MB
			CommitInterval: time.Second,
			StartOffset:    kafka.LastOffset,
		}),
		logger: logger,
	}

	dlqWriter := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        InteractionDLQTopic,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &MessageBus{
		producer:  producer,
		consumer:  consumer,
		dlqWriter: dlqWriter,
		logger:    logger,
	}, nil
}

func (mb *MessageBus) PublishInteraction(event InteractionEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction event: %w", err)
	}

	kafkaMessage := kafka.Message{
		Key:   []byte(event.UserID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "action", Value: []byte(event.Action)},
			{Key: "timestamp", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := mb.producer.writer.WriteMessages(ctx, kafkaMessage); err != nil {
		mb.logger.WithError(err).WithField("event_id", event.EventID).Error("Failed to publish interaction event to Kafka")
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	mb.logger.WithFields(logrus.Fields{
		"event_id": event.EventID,
		"user_id":  event.UserID,
		"action":   event.Action,
		"topic":    InteractionTopic,
	}).Info("Interaction event published to Kafka")

	return nil
}

func (mb *MessageBus) ConsumeInteractions(ctx context.Context, handler func(InteractionEvent) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			message, err := mb.consumer.reader.ReadMessage(ctx)
			if err != nil {
				mb.logger.WithError(err).Error("Failed to read message from Kafka")
				continue
			}

			result := validation.ValidateInteractionEvent(message.Value)
			if !result.Valid {
				mb.logger.WithField("errors", result.Errors).Error("Interaction event failed schema validation")
				continue
			}

			var event InteractionEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				mb.logger.WithError(err).Error("Failed to unmarshal interaction event")
				continue
			}

			if err := mb.processWithRetry(ctx, event, handler); err != nil {
				mb.logger.WithError(err).WithField("event_id", event.EventID).Error("Failed to process event after retries")

				if event.RetryCount >= 3 {
					if dlqErr := mb.sendToDLQ(ctx, event, err); dlqErr != nil {
						mb.logger.WithError(dlqErr).Error("Failed to send event to DLQ")
					}
				}
			}
		}
	}
}

func (mb *MessageBus) processWithRetry(ctx context.Context, event InteractionEvent, handler func(InteractionEvent) error) error {
	maxRetries := 3
	baseDelay := time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			mb.logger.WithFields(logrus.Fields{
				"event_id": event.EventID,
				"attempt":  attempt,
				"delay":    delay,
			}).Info("Retrying event processing")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		event.RetryCount = attempt
		if err := handler(event); err != nil {
			mb.logger.WithError(err).WithFields(logrus.Fields{
				"event_id": event.EventID,
				"attempt":  attempt,
			}).Warn("Event processing failed")

			if attempt == maxRetries {
				return fmt.Errorf("max retries exceeded: %w", err)
			}
			continue
		}

		mb.logger.WithFields(logrus.Fields{
			"event_id": event.EventID,
			"attempt":  attempt,
		}).Info("Event processed successfully")
		return nil
	}

	return fmt.Errorf("unexpected retry loop exit")
}

func (mb *MessageBus) sendToDLQ(ctx context.Context, event InteractionEvent, originalError error) error {
	dlqMessage := map[string]interface{}{
		"original_event": event,
		"error":          originalError.Error(),
		"dlq_timestamp":  time.Now(),
	}

	dlqBytes, err := json.Marshal(dlqMessage)
	if err != nil {
		return fmt.Errorf("failed to marshal DLQ message: %w", err)
	}

	kafkaMessage := kafka.Message{
		Key:   []byte(event.EventID.String()),
		Value: dlqBytes,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "original_topic", Value: []byte(InteractionTopic)},
			{Key: "error", Value: []byte(originalError.Error())},
		},
	}

	if err := mb.dlqWriter.WriteMessages(ctx, kafkaMessage); err != nil {
		return fmt.Errorf("failed to write message to DLQ: %w", err)
	}

	mb.logger.WithFields(logrus.Fields{
		"event_id": event.EventID,
		"error":    originalError.Error(),
	}).Warn("Event sent to DLQ")

	return nil
}

func (mb *MessageBus) Close() error {
	var errors []error

	if err := mb.producer.writer.Close(); err != nil {
		errors = append(errors, fmt.Errorf("failed to close producer: %w", err))
	}

	if err := mb.consumer.reader.Close(); err != nil {
		errors = append(errors, fmt.Errorf("failed to close consumer: %w", err))
	}

	if err := mb.dlqWriter.Close(); err != nil {
		errors = append(errors, fmt.Errorf("failed to close DLQ writer: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("errors closing message bus: %v", errors)
	}

	return nil
}

// GetMetrics returns consumer statistics for monitoring.
func (mb *MessageBus) GetMetrics() map[string]interface{} {
	stats := mb.consumer.reader.Stats()
	return map[string]interface{}{
		"consumer_lag":    stats.Lag,
		"consumer_offset": stats.Offset,
		"messages_read":   stats.Messages,
		"bytes_read":      stats.Bytes,
		"rebalances":      stats.Rebalances,
		"timeouts":        stats.Timeouts,
		"errors":          stats.Errors,
	}
}
