package repository

import (
	"context"
	"fmt"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ForumCommentRepository interface {
	Create(ctx context.Context, comment *entity.ForumComment) error
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.ForumComment, error)
}

type forumCommentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewForumCommentRepository(db database.PgxIface, log *zap.Logger) ForumCommentRepository {
	return &forumCommentRepository{
		db:  db,
		log: log.With(zap.String("repository", "forum_comment")),
	}
}

func (r *forumCommentRepository) Create(ctx context.Context, comment *entity.ForumComment) error {
	query := `
		INSERT INTO forum_comments (id, post_id, author, author_email, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.Author,
		comment.AuthorEmail,
		comment.Content,
		comment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create forum comment",
			zap.Error(err),
			zap.String("post_id", comment.PostID.String()),
		)
		return fmt.Errorf("create forum comment: %w", err)
	}

	return nil
}

func (r *forumCommentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.ForumComment, error) {
	query := `
		SELECT id, post_id, author, author_email, content, created_at
		FROM forum_comments
		WHERE post_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		r.log.Error("Failed to find comments by post ID",
			zap.Error(err),
			zap.String("post_id", postID.String()),
		)
		return nil, fmt.Errorf("find comments for post %s: %w", postID.String(), err)
	}
	defer rows.Close()

	var comments []*entity.ForumComment
	for rows.Next() {
		var comment entity.ForumComment
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.Author,
			&comment.AuthorEmail,
			&comment.Content,
			&comment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan forum comment row", zap.Error(err))
			return nil, fmt.Errorf("scan forum comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate forum comment rows: %w", err)
	}

	return comments, nil
}
