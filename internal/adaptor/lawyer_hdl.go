package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/keshav33450/Slot4Law/internal/dto/request"
	"github.com/keshav33450/Slot4Law/internal/usecase"
	"github.com/keshav33450/Slot4Law/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LawyerHandler struct {
	service usecase.LawyerService
	log     *zap.Logger
}

func NewLawyerHandler(service usecase.LawyerService, log *zap.Logger) *LawyerHandler {
	return &LawyerHandler{
		service: service,
		log:     log.With(zap.String("handler", "lawyer")),
	}
}

// ListLawyers handles GET /api/lawyers (public)
func (h *LawyerHandler) ListLawyers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ListLawyersRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 20),
		},
		Search:        query.Get("search"),
		City:          query.Get("city"),
		CourtType:     query.Get("court_type"),
		Language:      query.Get("language"),
		MinExperience: utils.ParseInt(query.Get("min_experience"), 0),
		Category:      query.Get("category"),
	}

	lawyers, err := h.service.ListLawyers(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list lawyers")
		return
	}

	utils.ResponseSuccess(w, "success", lawyers)
}

// GetLawyer handles GET /api/lawyers/{id} (public)
func (h *LawyerHandler) GetLawyer(w http.ResponseWriter, r *http.Request) {
	lawyerID := chi.URLParam(r, "id")

	lawyer, err := h.service.GetLawyer(r.Context(), lawyerID)
	if err != nil {
		handleServiceError(h.log, w, err, "get lawyer")
		return
	}

	utils.ResponseSuccess(w, "success", lawyer)
}

// CreateLawyer handles POST /api/admin/lawyers (admin)
func (h *LawyerHandler) CreateLawyer(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLawyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lawyer, err := h.service.CreateLawyer(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create lawyer")
		return
	}

	utils.ResponseCreated(w, "success", lawyer)
}

// UpdateLawyer handles PUT /api/admin/lawyers/{id} (admin)
func (h *LawyerHandler) UpdateLawyer(w http.ResponseWriter, r *http.Request) {
	lawyerID := chi.URLParam(r, "id")

	var req request.UpdateLawyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lawyer, err := h.service.UpdateLawyer(r.Context(), lawyerID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update lawyer")
		return
	}

	utils.ResponseSuccess(w, "success", lawyer)
}

// DeleteLawyer handles DELETE /api/admin/lawyers/{id} (admin)
func (h *LawyerHandler) DeleteLawyer(w http.ResponseWriter, r *http.Request) {
	lawyerID := chi.URLParam(r, "id")

	if err := h.service.DeleteLawyer(r.Context(), lawyerID); err != nil {
		handleServiceError(h.log, w, err, "delete lawyer")
		return
	}

	utils.ResponseSuccess(w, "Lawyer deleted", nil)
}
