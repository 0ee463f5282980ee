package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes booking events onto the broker. Publish failures
// are logged and returned so callers can ignore them; losing a
// notification never fails a confirmed booking.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}

type publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) Publisher {
	return &publisher{
		url: url,
		log: log.With(zap.String("component", "queue_publisher")),
	}
}

func (p *publisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("Failed to dial broker", zap.Error(err))
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("Failed to open channel", zap.Error(err))
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(BookingQueueName, true, false, false, false, nil); err != nil {
		p.log.Error("Failed to declare queue", zap.Error(err))
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", BookingQueueName, false, false, pub); err != nil {
		p.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("slot_key", event.SlotKey),
		)
		return fmt.Errorf("publish booking event: %w", err)
	}

	p.log.Info("Booking event published",
		zap.String("slot_key", event.SlotKey),
		zap.String("booking_ref", event.BookingRef),
	)
	return nil
}
