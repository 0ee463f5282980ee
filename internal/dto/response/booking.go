package response

import (
	"time"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
)

type BookingResponse struct {
	ID          string    `json:"id"`
	SlotKey     string    `json:"slot_key"`
	BookingRef  string    `json:"booking_ref"`
	LawyerName  string    `json:"lawyer_name"`
	LawyerEmail string    `json:"lawyer_email"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AvailabilityResponse lists the free slot labels for one lawyer on
// one date, in window order.
type AvailabilityResponse struct {
	LawyerEmail string   `json:"lawyer_email"`
	Date        string   `json:"date"`
	Available   []string `json:"available"`
}

// BookingToResponse derives the status from the booking time: the
// store only holds confirmed reservations, past ones read as completed.
func BookingToResponse(reservation *entity.Reservation, now time.Time) BookingResponse {
	status := "confirmed"
	if reservation.IsPast(now) {
		status = "completed"
	}

	return BookingResponse{
		ID:          reservation.ID.String(),
		SlotKey:     reservation.SlotKey,
		BookingRef:  reservation.BookingRef,
		LawyerName:  reservation.LawyerName,
		LawyerEmail: reservation.LawyerEmail,
		Date:        reservation.Date,
		Time:        reservation.TimeLabel,
		Status:      status,
		CreatedAt:   reservation.CreatedAt,
	}
}
