package repository

import (
	"github.com/keshav33450/Slot4Law/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Lawyer       LawyerRepository
	Reservation  ReservationRepository
	ForumPost    ForumPostRepository
	ForumComment ForumCommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Lawyer:       NewLawyerRepository(db, log),
		Reservation:  NewReservationRepository(db, log),
		ForumPost:    NewForumPostRepository(db, log),
		ForumComment: NewForumCommentRepository(db, log),
	}
}
