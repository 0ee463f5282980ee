package request

type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Content  string   `json:"content" validate:"required,max=10000"`
	Category string   `json:"category" validate:"required,oneof=criminal family property civil consumer employment"`
	Tags     []string `json:"tags" validate:"max=10,dive,max=50"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// VoteRequest accepts only a single step in either direction.
type VoteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type ListPostsRequest struct {
	PaginatedRequest
	Category string `json:"category"`
	SortBy   string `json:"sort_by" validate:"omitempty,oneof=recent popular"`
}
