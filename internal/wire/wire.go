package wire

import (
	"net/http"

	"github.com/keshav33450/Slot4Law/internal/adaptor"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/queue"
	"github.com/keshav33450/Slot4Law/internal/usecase"
	"github.com/keshav33450/Slot4Law/pkg/cache"
	"github.com/keshav33450/Slot4Law/pkg/middleware"
	"github.com/keshav33450/Slot4Law/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	availability cache.AvailabilityCache,
	publisher queue.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, availability, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireLawyer(r, handler.Lawyer, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireForum(r, handler.Forum, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
