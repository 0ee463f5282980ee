package repository

import (
	"context"
	"fmt"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	// Reserve persists the reservation if and only if no row exists
	// under its slot key. Returns ErrSlotTaken when the key is held.
	Reserve(ctx context.Context, reservation *entity.Reservation) error
	// Release deletes a reservation, but only for its owner.
	// Returns ErrNotFound for a missing key, ErrForbidden for a
	// non-owner caller.
	Release(ctx context.Context, slotKey string, userID uuid.UUID) error
	FindBySlotKey(ctx context.Context, slotKey string) (*entity.Reservation, error)
	FindByLawyerAndDate(ctx context.Context, lawyerEmail, date string) ([]*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, slot_key, booking_ref, lawyer_email, lawyer_name, date, time_label, user_id, user_email, created_at`

// Reserve relies on the unique index on reservations.slot_key: the
// insert-if-absent is a single statement, so two callers racing on the
// same key are serialized by the database regardless of where they run.
// Zero rows affected means the key was already held.
func (r *reservationRepository) Reserve(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, slot_key, booking_ref, lawyer_email, lawyer_name,
		                          date, time_label, user_id, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (slot_key) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.SlotKey,
		reservation.BookingRef,
		reservation.LawyerEmail,
		reservation.LawyerName,
		reservation.Date,
		reservation.TimeLabel,
		reservation.UserID,
		reservation.UserEmail,
		reservation.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to reserve slot",
			zap.Error(err),
			zap.String("slot_key", reservation.SlotKey),
			zap.String("user_id", reservation.UserID.String()),
		)
		return fmt.Errorf("reserve slot %s: %w", reservation.SlotKey, err)
	}

	if result.RowsAffected() == 0 {
		return ErrSlotTaken
	}

	return nil
}

// Release enforces ownership in the statement itself: the delete only
// matches rows whose user_id equals the caller. The follow-up existence
// check separates "not yours" from "not there".
func (r *reservationRepository) Release(ctx context.Context, slotKey string, userID uuid.UUID) error {
	query := `DELETE FROM reservations WHERE slot_key = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, slotKey, userID)
	if err != nil {
		r.log.Error("Failed to release slot",
			zap.Error(err),
			zap.String("slot_key", slotKey),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("release slot %s: %w", slotKey, err)
	}

	if result.RowsAffected() == 0 {
		existing, err := r.FindBySlotKey(ctx, slotKey)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotFound
		}
		r.log.Warn("Release rejected for non-owner",
			zap.String("slot_key", slotKey),
			zap.String("caller_id", userID.String()),
		)
		return ErrForbidden
	}

	r.log.Info("Reservation released",
		zap.String("slot_key", slotKey),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (r *reservationRepository) FindBySlotKey(ctx context.Context, slotKey string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE slot_key = $1`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, slotKey).Scan(
		&reservation.ID,
		&reservation.SlotKey,
		&reservation.BookingRef,
		&reservation.LawyerEmail,
		&reservation.LawyerName,
		&reservation.Date,
		&reservation.TimeLabel,
		&reservation.UserID,
		&reservation.UserEmail,
		&reservation.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by slot key",
			zap.Error(err),
			zap.String("slot_key", slotKey),
		)
		return nil, fmt.Errorf("find reservation by slot key %s: %w", slotKey, err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindByLawyerAndDate(ctx context.Context, lawyerEmail, date string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE lawyer_email = $1 AND date = $2
		ORDER BY time_label
	`

	rows, err := r.db.Query(ctx, query, lawyerEmail, date)
	if err != nil {
		r.log.Error("Failed to find reservations by lawyer and date",
			zap.Error(err),
			zap.String("lawyer_email", lawyerEmail),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find reservations for lawyer %s on %s: %w", lawyerEmail, date, err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY date DESC, time_label DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func scanReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.SlotKey,
			&reservation.BookingRef,
			&reservation.LawyerEmail,
			&reservation.LawyerName,
			&reservation.Date,
			&reservation.TimeLabel,
			&reservation.UserID,
			&reservation.UserEmail,
			&reservation.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}
