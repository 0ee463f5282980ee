package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/keshav33450/Slot4Law/pkg/mailer"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer drains the booking.confirmed queue and sends the
// notification emails. It runs a reconnect loop with capped backoff
// and stops only when its context is cancelled.
type Consumer struct {
	url    string
	mailer mailer.Mailer
	log    *zap.Logger
}

func NewConsumer(url string, m mailer.Mailer, log *zap.Logger) *Consumer {
	return &Consumer{
		url:    url,
		mailer: m,
		log:    log.With(zap.String("component", "booking_consumer")),
	}
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Failed to dial broker, retrying",
				zap.Error(err),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		}
		conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("Set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(BookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	msgs, err := ch.Consume(BookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(d.Body); err != nil {
				c.log.Error("Failed to handle booking event", zap.Error(err))
				// Reject without requeue to avoid a tight redelivery loop.
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var event BookingConfirmedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal booking event: %w", err)
	}

	// Each recipient is independent; a failure on one must not block
	// the other.
	if err := c.mailer.SendLawyerNotification(event.Email); err != nil {
		c.log.Error("Lawyer notification failed",
			zap.Error(err),
			zap.String("slot_key", event.SlotKey),
		)
	}

	if err := c.mailer.SendClientConfirmation(event.Email); err != nil {
		c.log.Error("Client confirmation failed",
			zap.Error(err),
			zap.String("slot_key", event.SlotKey),
		)
	}

	c.log.Info("Booking event processed",
		zap.String("slot_key", event.SlotKey),
		zap.String("booking_ref", event.BookingRef),
	)
	return nil
}
