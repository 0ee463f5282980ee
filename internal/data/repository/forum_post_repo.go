package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Forum list sort orders.
const (
	ForumSortRecent  = "recent"
	ForumSortPopular = "popular"
)

type ForumPostRepository interface {
	Create(ctx context.Context, post *entity.ForumPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ForumPost, error)
	FindAll(ctx context.Context, category string, sortBy string, limit, offset int) ([]*entity.ForumPost, error)
	CountAll(ctx context.Context, category string) (int64, error)
	// IncrementVotes adjusts the vote counter atomically in SQL; the
	// service never reads-modifies-writes the counter.
	IncrementVotes(ctx context.Context, postID uuid.UUID, delta int) error
	IncrementReplies(ctx context.Context, postID uuid.UUID) error
}

type forumPostRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewForumPostRepository(db database.PgxIface, log *zap.Logger) ForumPostRepository {
	return &forumPostRepository{
		db:  db,
		log: log.With(zap.String("repository", "forum_post")),
	}
}

const forumPostColumns = `id, title, content, category, author, author_email, votes, replies, tags, created_at, updated_at`

func (r *forumPostRepository) Create(ctx context.Context, post *entity.ForumPost) error {
	query := `
		INSERT INTO forum_posts (id, title, content, category, author, author_email,
		                         votes, replies, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Category,
		post.Author,
		post.AuthorEmail,
		post.Votes,
		post.Replies,
		post.Tags,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create forum post",
			zap.Error(err),
			zap.String("title", post.Title),
		)
		return fmt.Errorf("create forum post: %w", err)
	}

	return nil
}

func (r *forumPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ForumPost, error) {
	query := `SELECT ` + forumPostColumns + ` FROM forum_posts WHERE id = $1 AND deleted_at IS NULL`

	var post entity.ForumPost
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Category,
		&post.Author,
		&post.AuthorEmail,
		&post.Votes,
		&post.Replies,
		&post.Tags,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find forum post by ID",
			zap.Error(err),
			zap.String("post_id", id.String()),
		)
		return nil, fmt.Errorf("find forum post by ID %s: %w", id.String(), err)
	}

	return &post, nil
}

func (r *forumPostRepository) FindAll(ctx context.Context, category string, sortBy string, limit, offset int) ([]*entity.ForumPost, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + forumPostColumns + ` FROM forum_posts WHERE deleted_at IS NULL`)

	args := []interface{}{}
	argCount := 1

	if category != "" && category != "all" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCount))
		args = append(args, strings.ToLower(strings.TrimSpace(category)))
		argCount++
	}

	switch sortBy {
	case ForumSortPopular:
		queryBuilder.WriteString(" ORDER BY votes DESC, created_at DESC")
	default:
		queryBuilder.WriteString(" ORDER BY created_at DESC")
	}

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find forum posts",
			zap.Error(err),
			zap.String("category", category),
			zap.String("sort_by", sortBy),
		)
		return nil, fmt.Errorf("find forum posts: %w", err)
	}
	defer rows.Close()

	var posts []*entity.ForumPost
	for rows.Next() {
		var post entity.ForumPost
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Category,
			&post.Author,
			&post.AuthorEmail,
			&post.Votes,
			&post.Replies,
			&post.Tags,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan forum post row", zap.Error(err))
			return nil, fmt.Errorf("scan forum post row: %w", err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate forum post rows: %w", err)
	}

	return posts, nil
}

func (r *forumPostRepository) CountAll(ctx context.Context, category string) (int64, error) {
	query := `SELECT COUNT(*) FROM forum_posts WHERE deleted_at IS NULL`
	args := []interface{}{}

	if category != "" && category != "all" {
		query += " AND category = $1"
		args = append(args, strings.ToLower(strings.TrimSpace(category)))
	}

	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count forum posts", zap.Error(err))
		return 0, fmt.Errorf("count forum posts: %w", err)
	}

	return total, nil
}

func (r *forumPostRepository) IncrementVotes(ctx context.Context, postID uuid.UUID, delta int) error {
	query := `UPDATE forum_posts SET votes = votes + $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, postID, delta)
	if err != nil {
		r.log.Error("Failed to update post votes",
			zap.Error(err),
			zap.String("post_id", postID.String()),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("update votes for post %s: %w", postID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *forumPostRepository) IncrementReplies(ctx context.Context, postID uuid.UUID) error {
	query := `UPDATE forum_posts SET replies = replies + 1, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, postID)
	if err != nil {
		r.log.Error("Failed to update post reply count",
			zap.Error(err),
			zap.String("post_id", postID.String()),
		)
		return fmt.Errorf("update replies for post %s: %w", postID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
