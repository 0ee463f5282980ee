package wire

import (
	"github.com/keshav33450/Slot4Law/internal/adaptor"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireLawyer(
	r chi.Router,
	lawyerHandler *adaptor.LawyerHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	// GET /api/lawyers - searchable directory
	r.Get("/api/lawyers", lawyerHandler.ListLawyers)

	// GET /api/lawyers/{id} - lawyer profile
	r.Get("/api/lawyers/{id}", lawyerHandler.GetLawyer)

	// Admin routes
	r.Route("/api/admin/lawyers", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", lawyerHandler.CreateLawyer)
		r.Put("/{id}", lawyerHandler.UpdateLawyer)
		r.Delete("/{id}", lawyerHandler.DeleteLawyer)
	})
}
