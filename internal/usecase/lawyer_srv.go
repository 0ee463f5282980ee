package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/dto/request"
	"github.com/keshav33450/Slot4Law/internal/dto/response"
	"github.com/keshav33450/Slot4Law/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// categoryKeywords expands a coarse directory category into the
// practice-area keywords it covers.
var categoryKeywords = map[string][]string{
	"family":    {"family law", "matrimonial", "divorce", "custody"},
	"criminal":  {"criminal law", "white collar", "property law", "real estate", "ndps"},
	"corporate": {"corporate", "business law", "mergers", "m&a", "capital markets", "private equity", "venture"},
	"civil":     {"civil litigation", "debt", "bankruptcy", "insolvency", "debt recovery", "drt"},
}

var courtTypeBySlug = map[string]entity.CourtType{
	"supreme":  entity.CourtTypeSupreme,
	"high":     entity.CourtTypeHigh,
	"district": entity.CourtTypeDistrict,
	"other":    entity.CourtTypeOther,
}

type LawyerService interface {
	ListLawyers(ctx context.Context, req *request.ListLawyersRequest) (*response.PaginatedResponse[response.LawyerResponse], error)
	GetLawyer(ctx context.Context, lawyerID string) (*response.LawyerResponse, error)

	// Admin
	CreateLawyer(ctx context.Context, req *request.CreateLawyerRequest) (*response.LawyerResponse, error)
	UpdateLawyer(ctx context.Context, lawyerID string, req *request.UpdateLawyerRequest) (*response.LawyerResponse, error)
	DeleteLawyer(ctx context.Context, lawyerID string) error
}

type lawyerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLawyerService(repo *repository.Repository, log *zap.Logger) LawyerService {
	return &lawyerService{
		repo: repo,
		log:  log.With(zap.String("service", "lawyer")),
	}
}

func (s *lawyerService) ListLawyers(ctx context.Context, req *request.ListLawyersRequest) (*response.PaginatedResponse[response.LawyerResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.LawyerFilter{
		Search:        strings.TrimSpace(req.Search),
		City:          strings.TrimSpace(req.City),
		Language:      strings.TrimSpace(req.Language),
		MinExperience: req.MinExperience,
	}

	if req.CourtType != "" {
		courtType, ok := courtTypeBySlug[strings.ToLower(req.CourtType)]
		if !ok {
			return nil, fmt.Errorf("invalid court type %q", req.CourtType)
		}
		filter.CourtType = string(courtType)
	}

	if category := strings.ToLower(strings.TrimSpace(req.Category)); category != "" && category != "all" {
		keywords, ok := categoryKeywords[category]
		if !ok {
			return nil, fmt.Errorf("invalid category %q", req.Category)
		}
		filter.PracticeKeywords = keywords
	}

	lawyers, err := s.repo.Lawyer.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list lawyers: %w", err)
	}

	total, err := s.repo.Lawyer.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count lawyers: %w", err)
	}

	items := make([]response.LawyerResponse, 0, len(lawyers))
	for _, lawyer := range lawyers {
		items = append(items, response.LawyerToResponse(lawyer))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *lawyerService) GetLawyer(ctx context.Context, lawyerID string) (*response.LawyerResponse, error) {
	lawyerUUID, err := uuid.Parse(lawyerID)
	if err != nil {
		return nil, fmt.Errorf("invalid lawyer ID format %s: %w", lawyerID, err)
	}

	lawyer, err := s.repo.Lawyer.FindByID(ctx, lawyerUUID)
	if err != nil {
		return nil, fmt.Errorf("get lawyer: %w", err)
	}
	if lawyer == nil {
		return nil, fmt.Errorf("lawyer %s not found", lawyerID)
	}

	resp := response.LawyerToResponse(lawyer)
	return &resp, nil
}

func (s *lawyerService) CreateLawyer(ctx context.Context, req *request.CreateLawyerRequest) (*response.LawyerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create lawyer validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.Lawyer.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check lawyer email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("lawyer with email %s already exists", email)
	}

	now := time.Now()
	lawyer := &entity.Lawyer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		Phone:           req.Phone,
		Location:        req.Location,
		City:            strings.ToLower(strings.TrimSpace(req.City)),
		ExperienceYears: req.ExperienceYears,
		Languages:       req.Languages,
		PracticeAreas:   req.PracticeAreas,
		Forums:          req.Forums,
		CourtType:       courtTypeBySlug[req.CourtType],
		ConsultationFee: req.ConsultationFee,
		Bio:             req.Bio,
		ImageURL:        req.ImageURL,
		LinkedIn:        req.LinkedIn,
		Website:         req.Website,
	}

	if err := s.repo.Lawyer.Create(ctx, lawyer); err != nil {
		return nil, fmt.Errorf("create lawyer: %w", err)
	}

	s.log.Info("Lawyer created",
		zap.String("lawyer_id", lawyer.ID.String()),
		zap.String("email", email),
	)

	resp := response.LawyerToResponse(lawyer)
	return &resp, nil
}

func (s *lawyerService) UpdateLawyer(ctx context.Context, lawyerID string, req *request.UpdateLawyerRequest) (*response.LawyerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lawyerUUID, err := uuid.Parse(lawyerID)
	if err != nil {
		return nil, fmt.Errorf("invalid lawyer ID format %s: %w", lawyerID, err)
	}

	lawyer, err := s.repo.Lawyer.FindByID(ctx, lawyerUUID)
	if err != nil {
		return nil, fmt.Errorf("get lawyer: %w", err)
	}
	if lawyer == nil {
		return nil, fmt.Errorf("lawyer %s not found", lawyerID)
	}

	lawyer.Name = strings.TrimSpace(req.Name)
	lawyer.Email = strings.ToLower(strings.TrimSpace(req.Email))
	lawyer.Phone = req.Phone
	lawyer.Location = req.Location
	lawyer.City = strings.ToLower(strings.TrimSpace(req.City))
	lawyer.ExperienceYears = req.ExperienceYears
	lawyer.Languages = req.Languages
	lawyer.PracticeAreas = req.PracticeAreas
	lawyer.Forums = req.Forums
	lawyer.CourtType = courtTypeBySlug[req.CourtType]
	lawyer.ConsultationFee = req.ConsultationFee
	lawyer.Bio = req.Bio
	lawyer.ImageURL = req.ImageURL
	lawyer.LinkedIn = req.LinkedIn
	lawyer.Website = req.Website
	lawyer.UpdatedAt = time.Now()

	if err := s.repo.Lawyer.Update(ctx, lawyer); err != nil {
		return nil, fmt.Errorf("update lawyer: %w", err)
	}

	resp := response.LawyerToResponse(lawyer)
	return &resp, nil
}

func (s *lawyerService) DeleteLawyer(ctx context.Context, lawyerID string) error {
	lawyerUUID, err := uuid.Parse(lawyerID)
	if err != nil {
		return fmt.Errorf("invalid lawyer ID format %s: %w", lawyerID, err)
	}

	if err := s.repo.Lawyer.Delete(ctx, lawyerUUID); err != nil {
		return fmt.Errorf("delete lawyer: %w", err)
	}

	return nil
}
