// Package queue carries booking events over RabbitMQ so notification
// delivery is decoupled from the booking request path.
package queue

import "github.com/keshav33450/Slot4Law/pkg/mailer"

// BookingQueueName is the durable queue for confirmed bookings.
const BookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published when a slot reservation succeeds.
// It embeds the full email payload so the consumer can notify without
// querying the primary database.
type BookingConfirmedEvent struct {
	SlotKey     string                  `json:"slot_key"`
	BookingRef  string                  `json:"booking_ref"`
	UserID      string                  `json:"user_id"`
	ConfirmedAt string                  `json:"confirmed_at"`
	Email       mailer.BookingEmailData `json:"email"`
}
