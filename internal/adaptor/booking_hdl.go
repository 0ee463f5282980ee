package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/dto/request"
	"github.com/keshav33450/Slot4Law/internal/usecase"
	"github.com/keshav33450/Slot4Law/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	userEmail, _ := utils.GetUserEmailFromContext(r.Context())

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), userEmail, &req)
	if err != nil {
		// A taken slot is an expected race outcome, not a failure: answer
		// 409 and attach the refreshed availability for the date.
		if errors.Is(err, repository.ErrSlotTaken) {
			h.log.Info("Slot conflict",
				zap.String("lawyer_id", req.LawyerID),
				zap.String("date", req.Date),
				zap.String("time", req.Time),
			)
			availability, availErr := h.service.GetAvailability(r.Context(), req.LawyerID, req.Date)
			if availErr != nil {
				h.log.Warn("Failed to refresh availability after conflict", zap.Error(availErr))
				utils.ResponseConflict(w, "Slot already taken", nil)
				return
			}
			utils.ResponseConflict(w, "Slot already taken", availability)
			return
		}
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// CancelBooking handles DELETE /api/bookings/{slotKey} (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotKey := chi.URLParam(r, "slotKey")

	if err := h.service.CancelBooking(r.Context(), userID.String(), slotKey); err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", nil)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetAvailability handles GET /api/lawyers/{id}/availability?date=YYYY-MM-DD (public)
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	lawyerID := chi.URLParam(r, "id")
	date := r.URL.Query().Get("date")

	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), lawyerID, date)
	if err != nil {
		handleServiceError(h.log, w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
