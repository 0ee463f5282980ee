package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// LawyerFilter holds the optional directory filters. Zero values mean
// "no filter". PracticeKeywords is an expanded category (a category
// selection maps to several practice-area keywords).
type LawyerFilter struct {
	Search           string
	City             string
	CourtType        string
	Language         string
	MinExperience    int
	PracticeKeywords []string
}

type LawyerRepository interface {
	Create(ctx context.Context, lawyer *entity.Lawyer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lawyer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Lawyer, error)
	FindAll(ctx context.Context, filter LawyerFilter, limit, offset int) ([]*entity.Lawyer, error)
	CountAll(ctx context.Context, filter LawyerFilter) (int64, error)
	Update(ctx context.Context, lawyer *entity.Lawyer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type lawyerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLawyerRepository(db database.PgxIface, log *zap.Logger) LawyerRepository {
	return &lawyerRepository{
		db:  db,
		log: log.With(zap.String("repository", "lawyer")),
	}
}

const lawyerColumns = `id, name, email, phone, location, city, experience_years, languages,
	       practice_areas, forums, court_type, consultation_fee, bio, image_url,
	       linkedin, website, created_at, updated_at`

func (r *lawyerRepository) Create(ctx context.Context, lawyer *entity.Lawyer) error {
	query := `
		INSERT INTO lawyers (id, name, email, phone, location, city, experience_years,
		                     languages, practice_areas, forums, court_type, consultation_fee,
		                     bio, image_url, linkedin, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		lawyer.ID,
		lawyer.Name,
		lawyer.Email,
		lawyer.Phone,
		lawyer.Location,
		lawyer.City,
		lawyer.ExperienceYears,
		lawyer.Languages,
		lawyer.PracticeAreas,
		lawyer.Forums,
		lawyer.CourtType,
		lawyer.ConsultationFee,
		lawyer.Bio,
		lawyer.ImageURL,
		lawyer.LinkedIn,
		lawyer.Website,
		lawyer.CreatedAt,
		lawyer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create lawyer",
			zap.Error(err),
			zap.String("email", lawyer.Email),
		)
		return fmt.Errorf("create lawyer %s: %w", lawyer.Email, err)
	}

	return nil
}

func (r *lawyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lawyer, error) {
	query := `SELECT ` + lawyerColumns + ` FROM lawyers WHERE id = $1 AND deleted_at IS NULL`

	lawyer, err := r.scanLawyerRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find lawyer by ID",
			zap.Error(err),
			zap.String("lawyer_id", id.String()),
		)
		return nil, fmt.Errorf("find lawyer by ID %s: %w", id.String(), err)
	}

	return lawyer, nil
}

func (r *lawyerRepository) FindByEmail(ctx context.Context, email string) (*entity.Lawyer, error) {
	query := `SELECT ` + lawyerColumns + ` FROM lawyers WHERE email = $1 AND deleted_at IS NULL`

	lawyer, err := r.scanLawyerRow(r.db.QueryRow(ctx, query, email))
	if err != nil {
		r.log.Error("Failed to find lawyer by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find lawyer by email %s: %w", email, err)
	}

	return lawyer, nil
}

func (r *lawyerRepository) FindAll(ctx context.Context, filter LawyerFilter, limit, offset int) ([]*entity.Lawyer, error) {
	// Build query with optional filters
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + lawyerColumns + ` FROM lawyers WHERE deleted_at IS NULL`)

	where, args := buildLawyerFilter(filter)
	queryBuilder.WriteString(where)

	argCount := len(args) + 1
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY experience_years DESC, name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find lawyers",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find lawyers: %w", err)
	}
	defer rows.Close()

	var lawyers []*entity.Lawyer
	for rows.Next() {
		lawyer, err := r.scanLawyerRow(rows)
		if err != nil {
			r.log.Error("Failed to scan lawyer row", zap.Error(err))
			return nil, fmt.Errorf("scan lawyer row: %w", err)
		}
		lawyers = append(lawyers, lawyer)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate lawyer rows: %w", err)
	}

	return lawyers, nil
}

func (r *lawyerRepository) CountAll(ctx context.Context, filter LawyerFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM lawyers WHERE deleted_at IS NULL`

	where, args := buildLawyerFilter(filter)
	query += where

	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count lawyers", zap.Error(err))
		return 0, fmt.Errorf("count lawyers: %w", err)
	}

	return total, nil
}

func (r *lawyerRepository) Update(ctx context.Context, lawyer *entity.Lawyer) error {
	query := `
		UPDATE lawyers
		SET name = $2, email = $3, phone = $4, location = $5, city = $6,
		    experience_years = $7, languages = $8, practice_areas = $9, forums = $10,
		    court_type = $11, consultation_fee = $12, bio = $13, image_url = $14,
		    linkedin = $15, website = $16, updated_at = $17
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		lawyer.ID,
		lawyer.Name,
		lawyer.Email,
		lawyer.Phone,
		lawyer.Location,
		lawyer.City,
		lawyer.ExperienceYears,
		lawyer.Languages,
		lawyer.PracticeAreas,
		lawyer.Forums,
		lawyer.CourtType,
		lawyer.ConsultationFee,
		lawyer.Bio,
		lawyer.ImageURL,
		lawyer.LinkedIn,
		lawyer.Website,
		lawyer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update lawyer",
			zap.Error(err),
			zap.String("lawyer_id", lawyer.ID.String()),
		)
		return fmt.Errorf("update lawyer %s: %w", lawyer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lawyer %s not found", lawyer.ID.String())
	}

	return nil
}

func (r *lawyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE lawyers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete lawyer",
			zap.Error(err),
			zap.String("lawyer_id", id.String()),
		)
		return fmt.Errorf("delete lawyer %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lawyer %s not found", id.String())
	}

	r.log.Info("Lawyer deleted", zap.String("lawyer_id", id.String()))
	return nil
}

// buildLawyerFilter renders the optional WHERE fragments with
// positional args starting at $1.
func buildLawyerFilter(filter LawyerFilter) (string, []interface{}) {
	var sb strings.Builder
	args := []interface{}{}

	next := func() int { return len(args) + 1 }

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		n := next()
		sb.WriteString(fmt.Sprintf(
			" AND (LOWER(name) LIKE $%d OR LOWER(location) LIKE $%d OR EXISTS (SELECT 1 FROM unnest(practice_areas) pa WHERE LOWER(pa) LIKE $%d))",
			n, n, n))
		args = append(args, pattern)
	}

	if filter.City != "" {
		sb.WriteString(fmt.Sprintf(" AND city = $%d", next()))
		args = append(args, strings.ToLower(filter.City))
	}

	if filter.CourtType != "" {
		sb.WriteString(fmt.Sprintf(" AND court_type = $%d", next()))
		args = append(args, filter.CourtType)
	}

	if filter.Language != "" {
		sb.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM unnest(languages) l WHERE LOWER(l) = $%d)", next()))
		args = append(args, strings.ToLower(filter.Language))
	}

	if filter.MinExperience > 0 {
		sb.WriteString(fmt.Sprintf(" AND experience_years >= $%d", next()))
		args = append(args, filter.MinExperience)
	}

	if len(filter.PracticeKeywords) > 0 {
		n := next()
		sb.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM unnest(practice_areas) pa, unnest($%d::text[]) kw WHERE LOWER(pa) LIKE '%%' || kw || '%%')", n))
		lowered := make([]string, len(filter.PracticeKeywords))
		for i, kw := range filter.PracticeKeywords {
			lowered[i] = strings.ToLower(kw)
		}
		args = append(args, lowered)
	}

	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *lawyerRepository) scanLawyerRow(row rowScanner) (*entity.Lawyer, error) {
	var lawyer entity.Lawyer
	err := row.Scan(
		&lawyer.ID,
		&lawyer.Name,
		&lawyer.Email,
		&lawyer.Phone,
		&lawyer.Location,
		&lawyer.City,
		&lawyer.ExperienceYears,
		&lawyer.Languages,
		&lawyer.PracticeAreas,
		&lawyer.Forums,
		&lawyer.CourtType,
		&lawyer.ConsultationFee,
		&lawyer.Bio,
		&lawyer.ImageURL,
		&lawyer.LinkedIn,
		&lawyer.Website,
		&lawyer.CreatedAt,
		&lawyer.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &lawyer, nil
}
