package usecase

import (
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/queue"
	"github.com/keshav33450/Slot4Law/pkg/cache"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Lawyer  LawyerService
	Forum   ForumService
}

func NewService(repo *repository.Repository, availability cache.AvailabilityCache, publisher queue.Publisher, log *zap.Logger) *Service {
	return &Service{
		Booking: NewBookingService(repo, availability, publisher, log),
		Lawyer:  NewLawyerService(repo, log),
		Forum:   NewForumService(repo, log),
	}
}
