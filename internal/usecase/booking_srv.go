package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/dto/request"
	"github.com/keshav33450/Slot4Law/internal/dto/response"
	"github.com/keshav33450/Slot4Law/internal/queue"
	"github.com/keshav33450/Slot4Law/pkg/cache"
	"github.com/keshav33450/Slot4Law/pkg/mailer"
	"github.com/keshav33450/Slot4Law/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking claims the slot atomically and enqueues the
	// notification emails. A lost notification never fails a booking;
	// a taken slot surfaces as repository.ErrSlotTaken.
	CreateBooking(ctx context.Context, userID, userEmail string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, slotKey string) error
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetAvailability(ctx context.Context, lawyerID, date string) (*response.AvailabilityResponse, error)
}

type bookingService struct {
	repo         *repository.Repository
	availability cache.AvailabilityCache
	publisher    queue.Publisher
	log          *zap.Logger
}

func NewBookingService(repo *repository.Repository, availability cache.AvailabilityCache, publisher queue.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		publisher:    publisher,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, userEmail string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	lawyerID, err := uuid.Parse(req.LawyerID)
	if err != nil {
		return nil, fmt.Errorf("invalid lawyer ID format %s: %w", req.LawyerID, err)
	}

	lawyer, err := s.repo.Lawyer.FindByID(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("look up lawyer: %w", err)
	}
	if lawyer == nil {
		return nil, fmt.Errorf("lawyer %s not found", req.LawyerID)
	}

	lawyerEmail := strings.ToLower(strings.TrimSpace(lawyer.Email))

	// Key derivation validates the slot label; everything else about
	// the race is delegated to the store.
	slotKey, err := entity.BuildSlotKey(lawyerEmail, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid slot: %w", err)
	}

	normalizedTime := entity.NormalizeTimeLabel(req.Time)
	if slotInPast(req.Date, normalizedTime, time.Now()) {
		return nil, fmt.Errorf("cannot book a slot in the past")
	}

	now := time.Now()
	reservation := &entity.Reservation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		SlotKey:     slotKey,
		BookingRef:  utils.GenerateBookingRef(),
		LawyerEmail: lawyerEmail,
		LawyerName:  lawyer.Name,
		Date:        req.Date,
		TimeLabel:   normalizedTime,
		UserID:      userUUID,
		UserEmail:   userEmail,
	}

	if err := s.repo.Reservation.Reserve(ctx, reservation); err != nil {
		// ErrSlotTaken passes through untouched so the handler can
		// answer 409 with refreshed availability. Drop the cache entry
		// too: whatever the caller saw was evidently stale.
		if errors.Is(err, repository.ErrSlotTaken) {
			s.availability.Invalidate(ctx, lawyerEmail, req.Date)
		}
		return nil, err
	}

	s.availability.Invalidate(ctx, lawyerEmail, req.Date)

	s.log.Info("Slot reserved",
		zap.String("slot_key", slotKey),
		zap.String("booking_ref", reservation.BookingRef),
		zap.String("user_id", userID),
	)

	// Notification delivery is best effort: the reservation is already
	// committed, so a broker outage only costs the emails.
	event := queue.BookingConfirmedEvent{
		SlotKey:     slotKey,
		BookingRef:  reservation.BookingRef,
		UserID:      userID,
		ConfirmedAt: now.UTC().Format(time.RFC3339),
		Email: mailer.BookingEmailData{
			LawyerName:    lawyer.Name,
			LawyerEmail:   lawyerEmail,
			UserFirstName: req.FirstName,
			UserLastName:  req.LastName,
			UserEmail:     req.Email,
			UserPhone:     strings.TrimSpace(req.PhoneCode + " " + req.Phone),
			BookingDate:   req.Date,
			BookingTime:   normalizedTime,
			Timezone:      req.Timezone,
			LegalMatter:   req.LegalMatter,
			MatterType:    req.MatterType,
			CaseType:      req.CaseType,
			CaseSummary:   req.CaseSummary,
			BookingRef:    reservation.BookingRef,
		},
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.log.Warn("Booking confirmed but notification enqueue failed",
			zap.Error(err),
			zap.String("slot_key", slotKey),
		)
	}

	resp := response.BookingToResponse(reservation, now)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, slotKey string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if strings.TrimSpace(slotKey) == "" {
		return fmt.Errorf("validation failed: slot_key is required")
	}

	reservation, err := s.repo.Reservation.FindBySlotKey(ctx, slotKey)
	if err != nil {
		return fmt.Errorf("look up reservation: %w", err)
	}
	if reservation == nil {
		return repository.ErrNotFound
	}

	if err := s.repo.Reservation.Release(ctx, slotKey, userUUID); err != nil {
		return err
	}

	s.availability.Invalidate(ctx, reservation.LawyerEmail, reservation.Date)

	s.log.Info("Booking cancelled",
		zap.String("slot_key", slotKey),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	now := time.Now()
	bookings := make([]response.BookingResponse, 0, len(reservations))
	for _, reservation := range reservations {
		bookings = append(bookings, response.BookingToResponse(reservation, now))
	}

	return response.NewPaginatedResponse(bookings, req.Page, req.Limit(), total), nil
}

// GetAvailability returns the window labels not yet reserved for the
// lawyer on the date. Reads go through the short-TTL cache; the cache
// is invalidated on every reserve and release, so a stale entry can at
// worst over-report a slot that the store will then refuse.
func (s *bookingService) GetAvailability(ctx context.Context, lawyerID, date string) (*response.AvailabilityResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	lawyerUUID, err := uuid.Parse(lawyerID)
	if err != nil {
		return nil, fmt.Errorf("invalid lawyer ID format %s: %w", lawyerID, err)
	}

	lawyer, err := s.repo.Lawyer.FindByID(ctx, lawyerUUID)
	if err != nil {
		return nil, fmt.Errorf("look up lawyer: %w", err)
	}
	if lawyer == nil {
		return nil, fmt.Errorf("lawyer %s not found", lawyerID)
	}

	lawyerEmail := strings.ToLower(strings.TrimSpace(lawyer.Email))

	if slots, ok := s.availability.Get(ctx, lawyerEmail, date); ok {
		return &response.AvailabilityResponse{
			LawyerEmail: lawyerEmail,
			Date:        date,
			Available:   slots,
		}, nil
	}

	slots, err := s.freeSlots(ctx, lawyerEmail, date)
	if err != nil {
		return nil, err
	}

	s.availability.Set(ctx, lawyerEmail, date, slots)

	return &response.AvailabilityResponse{
		LawyerEmail: lawyerEmail,
		Date:        date,
		Available:   slots,
	}, nil
}

// freeSlots reads the store directly, bypassing the cache. Used both
// for cache misses and for the refreshed availability attached to a
// slot-taken conflict.
func (s *bookingService) freeSlots(ctx context.Context, lawyerEmail, date string) ([]string, error) {
	reservations, err := s.repo.Reservation.FindByLawyerAndDate(ctx, lawyerEmail, date)
	if err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}

	taken := make(map[string]bool, len(reservations))
	for _, reservation := range reservations {
		taken[entity.NormalizeTimeLabel(reservation.TimeLabel)] = true
	}

	slots := make([]string, 0, len(entity.AvailabilityWindow))
	for _, label := range entity.AvailabilityWindow {
		if !taken[label] {
			slots = append(slots, label)
		}
	}

	return slots, nil
}

func slotInPast(date, timeLabel string, now time.Time) bool {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeLabel, now.Location())
	if err != nil {
		return false
	}
	return t.Before(now)
}
