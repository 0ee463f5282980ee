package wire

import (
	"github.com/keshav33450/Slot4Law/internal/adaptor"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - claim a consultation slot
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// DELETE /api/bookings/{slotKey} - cancel own booking
		r.Delete("/api/bookings/{slotKey}", bookingHandler.CancelBooking)

		// GET /api/user/bookings - own booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// Public routes
	// GET /api/lawyers/{id}/availability?date=YYYY-MM-DD - free slots
	r.Get("/api/lawyers/{id}/availability", bookingHandler.GetAvailability)
}
