package response

import (
	"time"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
)

type ForumPostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	Votes     int       `json:"votes"`
	Replies   int       `json:"replies"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type ForumCommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ForumPostDetailResponse struct {
	ForumPostResponse
	Comments []ForumCommentResponse `json:"comments"`
}

func ForumPostToResponse(post *entity.ForumPost) ForumPostResponse {
	return ForumPostResponse{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   post.Content,
		Category:  string(post.Category),
		Author:    post.Author,
		Votes:     post.Votes,
		Replies:   post.Replies,
		Tags:      post.Tags,
		CreatedAt: post.CreatedAt,
	}
}

func ForumCommentToResponse(comment *entity.ForumComment) ForumCommentResponse {
	return ForumCommentResponse{
		ID:        comment.ID.String(),
		PostID:    comment.PostID.String(),
		Author:    comment.Author,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
