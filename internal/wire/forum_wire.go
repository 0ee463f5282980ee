package wire

import (
	"github.com/keshav33450/Slot4Law/internal/adaptor"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireForum(
	r chi.Router,
	forumHandler *adaptor.ForumHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	// GET /api/forum/posts - browse questions
	r.Get("/api/forum/posts", forumHandler.ListPosts)

	// GET /api/forum/posts/{id} - question with comments
	r.Get("/api/forum/posts/{id}", forumHandler.GetPost)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/forum/posts", forumHandler.CreatePost)
		r.Post("/api/forum/posts/{id}/comments", forumHandler.AddComment)
		r.Post("/api/forum/posts/{id}/vote", forumHandler.VotePost)
	})
}
