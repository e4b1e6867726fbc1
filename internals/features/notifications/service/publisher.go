package service

import (
	"context"
	"log"
	"time"

	"videoach_backend/internals/features/notifications/dto"
	"videoach_backend/internals/features/notifications/model"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	Publish(ctx context.Context, n model.NotificationModel) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.NotificationModel) error { return nil }
func (NopPublisher) Close() error                                           { return nil }

type KafkaPublisher struct {
	Writer *kafka.Writer
}

// NewPublisher returns a kafka publisher, or a NopPublisher without brokers.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Println("[INFO] KAFKA_BROKERS not set, notifications are not published")
		return NopPublisher{}
	}
	return &KafkaPublisher{Writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// toMessage keys by recipient so a user's notifications stay ordered.
func toMessage(n model.NotificationModel) (kafka.Message, error) {
	b, err := sonic.Marshal(dto.Event{
		ID:        n.NotificationID,
		From:      n.NotificationFromUserID,
		To:        n.NotificationToUserID,
		Type:      n.NotificationType,
		Message:   n.NotificationMessage,
		CreatedAt: n.NotificationCreatedAt.Unix(),
	})
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(n.NotificationToUserID.String()),
		Value: b,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.NotificationType)},
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, n model.NotificationModel) error {
	msg, err := toMessage(n)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }
