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

type ForumService interface {
	CreatePost(ctx context.Context, userID string, req *request.CreatePostRequest) (*response.ForumPostResponse, error)
	ListPosts(ctx context.Context, req *request.ListPostsRequest) (*response.PaginatedResponse[response.ForumPostResponse], error)
	GetPost(ctx context.Context, postID string) (*response.ForumPostDetailResponse, error)
	AddComment(ctx context.Context, userID, postID string, req *request.CreateCommentRequest) (*response.ForumCommentResponse, error)
	Vote(ctx context.Context, postID string, req *request.VoteRequest) error
}

type forumService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewForumService(repo *repository.Repository, log *zap.Logger) ForumService {
	return &forumService{
		repo: repo,
		log:  log.With(zap.String("service", "forum")),
	}
}

func (s *forumService) CreatePost(ctx context.Context, userID string, req *request.CreatePostRequest) (*response.ForumPostResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create post validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	author, err := s.lookupAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &entity.ForumPost{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Category:    entity.ForumCategory(strings.ToLower(req.Category)),
		Author:      author.FullName,
		AuthorEmail: author.Email,
		Tags:        req.Tags,
	}

	if err := s.repo.ForumPost.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info("Forum post created",
		zap.String("post_id", post.ID.String()),
		zap.String("category", req.Category),
	)

	resp := response.ForumPostToResponse(post)
	return &resp, nil
}

func (s *forumService) ListPosts(ctx context.Context, req *request.ListPostsRequest) (*response.PaginatedResponse[response.ForumPostResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	posts, err := s.repo.ForumPost.FindAll(ctx, req.Category, req.SortBy, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	total, err := s.repo.ForumPost.CountAll(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	items := make([]response.ForumPostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, response.ForumPostToResponse(post))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *forumService) GetPost(ctx context.Context, postID string) (*response.ForumPostDetailResponse, error) {
	postUUID, err := uuid.Parse(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format %s: %w", postID, err)
	}

	post, err := s.repo.ForumPost.FindByID(ctx, postUUID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %s not found", postID)
	}

	comments, err := s.repo.ForumComment.FindByPostID(ctx, postUUID)
	if err != nil {
		return nil, fmt.Errorf("get post comments: %w", err)
	}

	commentResponses := make([]response.ForumCommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, response.ForumCommentToResponse(comment))
	}

	return &response.ForumPostDetailResponse{
		ForumPostResponse: response.ForumPostToResponse(post),
		Comments:          commentResponses,
	}, nil
}

func (s *forumService) AddComment(ctx context.Context, userID, postID string, req *request.CreateCommentRequest) (*response.ForumCommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	postUUID, err := uuid.Parse(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format %s: %w", postID, err)
	}

	post, err := s.repo.ForumPost.FindByID(ctx, postUUID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %s not found", postID)
	}

	author, err := s.lookupAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &entity.ForumComment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		PostID:      postUUID,
		Author:      author.FullName,
		AuthorEmail: author.Email,
		Content:     req.Content,
	}

	if err := s.repo.ForumComment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// The reply counter is advisory; a failed increment leaves the
	// comment in place and only skews the list view.
	if err := s.repo.ForumPost.IncrementReplies(ctx, postUUID); err != nil {
		s.log.Warn("Failed to bump reply counter",
			zap.Error(err),
			zap.String("post_id", postID),
		)
	}

	resp := response.ForumCommentToResponse(comment)
	return &resp, nil
}

func (s *forumService) Vote(ctx context.Context, postID string, req *request.VoteRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	postUUID, err := uuid.Parse(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format %s: %w", postID, err)
	}

	delta := 1
	if req.Direction == "down" {
		delta = -1
	}

	if err := s.repo.ForumPost.IncrementVotes(ctx, postUUID, delta); err != nil {
		return err
	}

	return nil
}

func (s *forumService) lookupAuthor(ctx context.Context, userID string) (*entity.User, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("look up author: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	return user, nil
}
