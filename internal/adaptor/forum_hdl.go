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

type ForumHandler struct {
	service usecase.ForumService
	log     *zap.Logger
}

func NewForumHandler(service usecase.ForumService, log *zap.Logger) *ForumHandler {
	return &ForumHandler{
		service: service,
		log:     log.With(zap.String("handler", "forum")),
	}
}

// ListPosts handles GET /api/forum/posts (public)
func (h *ForumHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ListPostsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 20),
		},
		Category: query.Get("category"),
		SortBy:   query.Get("sort_by"),
	}

	posts, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list posts")
		return
	}

	utils.ResponseSuccess(w, "success", posts)
}

// GetPost handles GET /api/forum/posts/{id} (public)
func (h *ForumHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(h.log, w, err, "get post")
		return
	}

	utils.ResponseSuccess(w, "success", post)
}

// CreatePost handles POST /api/forum/posts (protected)
func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create post")
		return
	}

	utils.ResponseCreated(w, "success", post)
}

// AddComment handles POST /api/forum/posts/{id}/comments (protected)
func (h *ForumHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	postID := chi.URLParam(r, "id")

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.AddComment(r.Context(), userID.String(), postID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// VotePost handles POST /api/forum/posts/{id}/vote (protected)
func (h *ForumHandler) VotePost(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	postID := chi.URLParam(r, "id")

	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Vote(r.Context(), postID, &req); err != nil {
		handleServiceError(h.log, w, err, "vote post")
		return
	}

	utils.ResponseSuccess(w, "Vote recorded", nil)
}
