package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/dto/request"
	"github.com/keshav33450/Slot4Law/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- in-memory fakes ----

type fakeReservationRepo struct {
	mu          sync.Mutex
	bySlot      map[string]*entity.Reservation
	reserveErr  error
	lookupCalls int
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{bySlot: make(map[string]*entity.Reservation)}
}

func (f *fakeReservationRepo) Reserve(ctx context.Context, r *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reserveErr != nil {
		return f.reserveErr
	}
	if _, held := f.bySlot[r.SlotKey]; held {
		return repository.ErrSlotTaken
	}
	copied := *r
	f.bySlot[r.SlotKey] = &copied
	return nil
}

func (f *fakeReservationRepo) Release(ctx context.Context, slotKey string, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.bySlot[slotKey]
	if !ok {
		return repository.ErrNotFound
	}
	if existing.UserID != userID {
		return repository.ErrForbidden
	}
	delete(f.bySlot, slotKey)
	return nil
}

func (f *fakeReservationRepo) FindBySlotKey(ctx context.Context, slotKey string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.bySlot[slotKey]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByLawyerAndDate(ctx context.Context, lawyerEmail, date string) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookupCalls++
	var out []*entity.Reservation
	for _, r := range f.bySlot {
		if r.LawyerEmail == lawyerEmail && r.Date == date {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reservation
	for _, r := range f.bySlot {
		if r.UserID == userID {
			copied := *r
			out = append(out, &copied)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeReservationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.bySlot {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeLawyerRepo struct {
	byID map[uuid.UUID]*entity.Lawyer
}

func (f *fakeLawyerRepo) Create(ctx context.Context, l *entity.Lawyer) error { return nil }
func (f *fakeLawyerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lawyer, error) {
	return f.byID[id], nil
}
func (f *fakeLawyerRepo) FindByEmail(ctx context.Context, email string) (*entity.Lawyer, error) {
	for _, l := range f.byID {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, nil
}
func (f *fakeLawyerRepo) FindAll(ctx context.Context, filter repository.LawyerFilter, limit, offset int) ([]*entity.Lawyer, error) {
	return nil, nil
}
func (f *fakeLawyerRepo) CountAll(ctx context.Context, filter repository.LawyerFilter) (int64, error) {
	return 0, nil
}
func (f *fakeLawyerRepo) Update(ctx context.Context, l *entity.Lawyer) error { return nil }
func (f *fakeLawyerRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

type fakeAvailabilityCache struct {
	mu      sync.Mutex
	entries map[string][]string
	hits    int
}

func newFakeAvailabilityCache() *fakeAvailabilityCache {
	return &fakeAvailabilityCache{entries: make(map[string][]string)}
}

func (c *fakeAvailabilityCache) key(lawyerEmail, date string) string {
	return lawyerEmail + "|" + date
}

func (c *fakeAvailabilityCache) Get(ctx context.Context, lawyerEmail, date string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[c.key(lawyerEmail, date)]
	if ok {
		c.hits++
	}
	return slots, ok
}

func (c *fakeAvailabilityCache) Set(ctx context.Context, lawyerEmail, date string, slots []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(lawyerEmail, date)] = slots
}

func (c *fakeAvailabilityCache) Invalidate(ctx context.Context, lawyerEmail, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, c.key(lawyerEmail, date))
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.BookingConfirmedEvent
	err    error
}

func (p *fakePublisher) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

// ---- fixtures ----

type bookingFixture struct {
	service      BookingService
	reservations *fakeReservationRepo
	cache        *fakeAvailabilityCache
	publisher    *fakePublisher
	lawyer       *entity.Lawyer
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	lawyer := &entity.Lawyer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:  "Advocate Rao",
		Email: "adv.rao@example.com",
	}

	reservations := newFakeReservationRepo()
	availability := newFakeAvailabilityCache()
	publisher := &fakePublisher{}

	repo := &repository.Repository{
		Lawyer:      &fakeLawyerRepo{byID: map[uuid.UUID]*entity.Lawyer{lawyer.ID: lawyer}},
		Reservation: reservations,
	}

	return &bookingFixture{
		service:      NewBookingService(repo, availability, publisher, zap.NewNop()),
		reservations: reservations,
		cache:        availability,
		publisher:    publisher,
		lawyer:       lawyer,
	}
}

func futureDate() string {
	return time.Now().AddDate(1, 0, 0).Format("2006-01-02")
}

func validBookingRequest(lawyerID, date, timeLabel string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		LawyerID:    lawyerID,
		Date:        date,
		Time:        timeLabel,
		FirstName:   "Asha",
		LastName:    "Menon",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		PhoneCode:   "+91",
		Timezone:    "Asia/Kolkata",
		LegalMatter: "Property dispute",
		MatterType:  "civil",
		CaseType:    "property",
		CaseSummary: "Boundary disagreement with neighbour.",
	}
}

// ---- tests ----

func TestCreateBooking(t *testing.T) {
	t.Run("success reserves slot and publishes event", func(t *testing.T) {
		fx := newBookingFixture(t)
		userID := uuid.New()
		date := futureDate()

		resp, err := fx.service.CreateBooking(context.Background(), userID.String(), "asha@session.example", validBookingRequest(fx.lawyer.ID.String(), date, "10:00"))
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "adv.rao@example.com_"+date+"_10:00", resp.SlotKey)
		assert.Equal(t, "confirmed", resp.Status)
		assert.NotEmpty(t, resp.BookingRef)

		stored, err := fx.reservations.FindBySlotKey(context.Background(), resp.SlotKey)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, userID, stored.UserID)
		assert.Equal(t, "asha@session.example", stored.UserEmail)

		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, resp.SlotKey, fx.publisher.events[0].SlotKey)
		assert.Equal(t, "Asha", fx.publisher.events[0].Email.UserFirstName)
	})

	t.Run("legacy afternoon label claims the canonical slot", func(t *testing.T) {
		fx := newBookingFixture(t)
		date := futureDate()

		resp, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", validBookingRequest(fx.lawyer.ID.String(), date, "1:00"))
		require.NoError(t, err)
		assert.Equal(t, "adv.rao@example.com_"+date+"_13:00", resp.SlotKey)

		// A canonical retry for the same wall-clock slot must conflict.
		_, err = fx.service.CreateBooking(context.Background(), uuid.New().String(), "d@e.f", validBookingRequest(fx.lawyer.ID.String(), date, "13:00"))
		assert.ErrorIs(t, err, repository.ErrSlotTaken)
	})

	t.Run("taken slot surfaces ErrSlotTaken and keeps the first owner", func(t *testing.T) {
		fx := newBookingFixture(t)
		date := futureDate()
		winner := uuid.New()

		first, err := fx.service.CreateBooking(context.Background(), winner.String(), "a@b.c", validBookingRequest(fx.lawyer.ID.String(), date, "11:00"))
		require.NoError(t, err)

		_, err = fx.service.CreateBooking(context.Background(), uuid.New().String(), "d@e.f", validBookingRequest(fx.lawyer.ID.String(), date, "11:00"))
		assert.ErrorIs(t, err, repository.ErrSlotTaken)

		stored, err := fx.reservations.FindBySlotKey(context.Background(), first.SlotKey)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, winner, stored.UserID)

		availability, err := fx.service.GetAvailability(context.Background(), fx.lawyer.ID.String(), date)
		require.NoError(t, err)
		assert.NotContains(t, availability.Available, "11:00")
	})

	t.Run("concurrent claims on one slot produce exactly one winner", func(t *testing.T) {
		fx := newBookingFixture(t)
		date := futureDate()

		const callers = 20
		var wg sync.WaitGroup
		results := make(chan error, callers)

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := validBookingRequest(fx.lawyer.ID.String(), date, "14:00")
				req.Email = fmt.Sprintf("caller%d@example.com", i)
				_, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), req.Email, req)
				results <- err
			}(i)
		}
		wg.Wait()
		close(results)

		wins, conflicts := 0, 0
		for err := range results {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, repository.ErrSlotTaken):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, callers-1, conflicts)
	})

	t.Run("validation failure leaves the store untouched", func(t *testing.T) {
		fx := newBookingFixture(t)
		req := validBookingRequest(fx.lawyer.ID.String(), futureDate(), "10:00")
		req.Email = "not-an-email"

		_, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Empty(t, fx.reservations.bySlot)
	})

	t.Run("time outside window is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", validBookingRequest(fx.lawyer.ID.String(), futureDate(), "08:00"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid slot")
	})

	t.Run("past slot is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", validBookingRequest(fx.lawyer.ID.String(), "2020-01-02", "10:00"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "past")
	})

	t.Run("unknown lawyer is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", validBookingRequest(uuid.New().String(), futureDate(), "10:00"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("notification failure does not fail the booking", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.publisher.err = errors.New("broker down")
		date := futureDate()

		resp, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", validBookingRequest(fx.lawyer.ID.String(), date, "15:00"))
		require.NoError(t, err)
		require.NotNil(t, resp)

		stored, err := fx.reservations.FindBySlotKey(context.Background(), resp.SlotKey)
		require.NoError(t, err)
		assert.NotNil(t, stored)
	})
}

func TestCancelBooking(t *testing.T) {
	fx := newBookingFixture(t)
	owner := uuid.New()
	date := futureDate()

	resp, err := fx.service.CreateBooking(context.Background(), owner.String(), "owner@example.com", validBookingRequest(fx.lawyer.ID.String(), date, "16:00"))
	require.NoError(t, err)

	t.Run("non-owner is refused", func(t *testing.T) {
		err := fx.service.CancelBooking(context.Background(), uuid.New().String(), resp.SlotKey)
		assert.ErrorIs(t, err, repository.ErrForbidden)
	})

	t.Run("owner releases the slot", func(t *testing.T) {
		err := fx.service.CancelBooking(context.Background(), owner.String(), resp.SlotKey)
		require.NoError(t, err)

		stored, err := fx.reservations.FindBySlotKey(context.Background(), resp.SlotKey)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("missing reservation reports not found", func(t *testing.T) {
		err := fx.service.CancelBooking(context.Background(), owner.String(), resp.SlotKey)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestGetAvailability(t *testing.T) {
	t.Run("reserved slots are excluded", func(t *testing.T) {
		fx := newBookingFixture(t)
		date := futureDate()

		_, err := fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", validBookingRequest(fx.lawyer.ID.String(), date, "10:00"))
		require.NoError(t, err)

		availability, err := fx.service.GetAvailability(context.Background(), fx.lawyer.ID.String(), date)
		require.NoError(t, err)

		assert.Len(t, availability.Available, len(entity.AvailabilityWindow)-1)
		assert.NotContains(t, availability.Available, "10:00")
		assert.Contains(t, availability.Available, "09:00")
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		fx := newBookingFixture(t)
		date := futureDate()

		_, err := fx.service.GetAvailability(context.Background(), fx.lawyer.ID.String(), date)
		require.NoError(t, err)
		lookupsAfterFirst := fx.reservations.lookupCalls

		_, err = fx.service.GetAvailability(context.Background(), fx.lawyer.ID.String(), date)
		require.NoError(t, err)

		assert.Equal(t, lookupsAfterFirst, fx.reservations.lookupCalls)
		assert.Equal(t, 1, fx.cache.hits)
	})

	t.Run("booking invalidates the cached availability", func(t *testing.T) {
		fx := newBookingFixture(t)
		date := futureDate()

		first, err := fx.service.GetAvailability(context.Background(), fx.lawyer.ID.String(), date)
		require.NoError(t, err)
		assert.Contains(t, first.Available, "12:00")

		_, err = fx.service.CreateBooking(context.Background(), uuid.New().String(), "a@b.c", validBookingRequest(fx.lawyer.ID.String(), date, "12:00"))
		require.NoError(t, err)

		refreshed, err := fx.service.GetAvailability(context.Background(), fx.lawyer.ID.String(), date)
		require.NoError(t, err)
		assert.NotContains(t, refreshed.Available, "12:00")
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.GetAvailability(context.Background(), fx.lawyer.ID.String(), "01-05-2030")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})
}

func TestGetUserBookings(t *testing.T) {
	fx := newBookingFixture(t)
	userID := uuid.New()
	date := futureDate()

	for _, label := range []string{"09:00", "10:00", "11:00"} {
		req := validBookingRequest(fx.lawyer.ID.String(), date, label)
		_, err := fx.service.CreateBooking(context.Background(), userID.String(), "owner@example.com", req)
		require.NoError(t, err)
	}

	page, err := fx.service.GetUserBookings(context.Background(), userID.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, page.Data, 3)
	assert.Equal(t, int64(3), page.Pagination.Total)
	for _, booking := range page.Data {
		assert.Equal(t, "confirmed", booking.Status)
	}
}
