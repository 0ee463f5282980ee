package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/keshav33450/Slot4Law/internal/data/entity"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeForumPostRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*entity.ForumPost
}

func newFakeForumPostRepo() *fakeForumPostRepo {
	return &fakeForumPostRepo{byID: make(map[uuid.UUID]*entity.ForumPost)}
}

func (f *fakeForumPostRepo) Create(ctx context.Context, post *entity.ForumPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *post
	f.byID[post.ID] = &copied
	return nil
}

func (f *fakeForumPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ForumPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post, ok := f.byID[id]; ok {
		copied := *post
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeForumPostRepo) FindAll(ctx context.Context, category string, sortBy string, limit, offset int) ([]*entity.ForumPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ForumPost
	for _, post := range f.byID {
		if category != "" && category != "all" && string(post.Category) != category {
			continue
		}
		copied := *post
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if sortBy == repository.ForumSortPopular {
			return out[i].Votes > out[j].Votes
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeForumPostRepo) CountAll(ctx context.Context, category string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, post := range f.byID {
		if category == "" || category == "all" || string(post.Category) == category {
			n++
		}
	}
	return n, nil
}

func (f *fakeForumPostRepo) IncrementVotes(ctx context.Context, postID uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.byID[postID]
	if !ok {
		return repository.ErrNotFound
	}
	post.Votes += delta
	return nil
}

func (f *fakeForumPostRepo) IncrementReplies(ctx context.Context, postID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.byID[postID]
	if !ok {
		return repository.ErrNotFound
	}
	post.Replies++
	return nil
}

type fakeForumCommentRepo struct {
	mu     sync.Mutex
	byPost map[uuid.UUID][]*entity.ForumComment
}

func newFakeForumCommentRepo() *fakeForumCommentRepo {
	return &fakeForumCommentRepo{byPost: make(map[uuid.UUID][]*entity.ForumComment)}
}

func (f *fakeForumCommentRepo) Create(ctx context.Context, comment *entity.ForumComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *comment
	f.byPost[comment.PostID] = append(f.byPost[comment.PostID], &copied)
	return nil
}

func (f *fakeForumCommentRepo) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.ForumComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byPost[postID], nil
}

type fakeUserRepo struct {
	byID map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type forumFixture struct {
	service  ForumService
	posts    *fakeForumPostRepo
	comments *fakeForumCommentRepo
	user     *entity.User
}

func newForumFixture(t *testing.T) *forumFixture {
	t.Helper()

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:    "asha@example.com",
		FullName: "Asha Menon",
		Role:     "customer",
	}

	posts := newFakeForumPostRepo()
	comments := newFakeForumCommentRepo()
	repo := &repository.Repository{
		User:         &fakeUserRepo{byID: map[uuid.UUID]*entity.User{user.ID: user}},
		ForumPost:    posts,
		ForumComment: comments,
	}

	return &forumFixture{
		service:  NewForumService(repo, zap.NewNop()),
		posts:    posts,
		comments: comments,
		user:     user,
	}
}

func TestForumCreatePost(t *testing.T) {
	fx := newForumFixture(t)

	post, err := fx.service.CreatePost(context.Background(), fx.user.ID.String(), &request.CreatePostRequest{
		Title:    "Tenant refusing to vacate",
		Content:  "What are my options under the rent control act?",
		Category: "property",
		Tags:     []string{"tenancy", "eviction"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha Menon", post.Author)
	assert.Equal(t, "property", post.Category)
	assert.Equal(t, 0, post.Votes)
	assert.Equal(t, 0, post.Replies)

	t.Run("unknown author is rejected", func(t *testing.T) {
		_, err := fx.service.CreatePost(context.Background(), uuid.New().String(), &request.CreatePostRequest{
			Title:    "x",
			Content:  "y",
			Category: "civil",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("bad category fails validation", func(t *testing.T) {
		_, err := fx.service.CreatePost(context.Background(), fx.user.ID.String(), &request.CreatePostRequest{
			Title:    "x",
			Content:  "y",
			Category: "maritime",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}

func TestForumCommentsAndVotes(t *testing.T) {
	fx := newForumFixture(t)

	post, err := fx.service.CreatePost(context.Background(), fx.user.ID.String(), &request.CreatePostRequest{
		Title:    "Cheque bounce notice",
		Content:  "Received a section 138 notice, what next?",
		Category: "criminal",
	})
	require.NoError(t, err)

	t.Run("comment bumps the reply counter", func(t *testing.T) {
		comment, err := fx.service.AddComment(context.Background(), fx.user.ID.String(), post.ID, &request.CreateCommentRequest{
			Content: "Reply within 15 days through a lawyer.",
		})
		require.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)

		detail, err := fx.service.GetPost(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, detail.Replies)
		require.Len(t, detail.Comments, 1)
		assert.Equal(t, "Asha Menon", detail.Comments[0].Author)
	})

	t.Run("votes move in both directions", func(t *testing.T) {
		require.NoError(t, fx.service.Vote(context.Background(), post.ID, &request.VoteRequest{Direction: "up"}))
		require.NoError(t, fx.service.Vote(context.Background(), post.ID, &request.VoteRequest{Direction: "up"}))
		require.NoError(t, fx.service.Vote(context.Background(), post.ID, &request.VoteRequest{Direction: "down"}))

		detail, err := fx.service.GetPost(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, detail.Votes)
	})

	t.Run("vote on missing post reports not found", func(t *testing.T) {
		err := fx.service.Vote(context.Background(), uuid.New().String(), &request.VoteRequest{Direction: "up"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestForumListPosts(t *testing.T) {
	fx := newForumFixture(t)

	categories := []string{"criminal", "family", "criminal"}
	var ids []string
	for _, category := range categories {
		post, err := fx.service.CreatePost(context.Background(), fx.user.ID.String(), &request.CreatePostRequest{
			Title:    "Question",
			Content:  "Details",
			Category: category,
		})
		require.NoError(t, err)
		ids = append(ids, post.ID)
	}

	// Make the middle post the most voted one.
	require.NoError(t, fx.service.Vote(context.Background(), ids[1], &request.VoteRequest{Direction: "up"}))

	t.Run("category filter", func(t *testing.T) {
		page, err := fx.service.ListPosts(context.Background(), &request.ListPostsRequest{
			PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
			Category:         "criminal",
		})
		require.NoError(t, err)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, int64(2), page.Pagination.Total)
	})

	t.Run("popular sort puts the voted post first", func(t *testing.T) {
		page, err := fx.service.ListPosts(context.Background(), &request.ListPostsRequest{
			PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
			SortBy:           repository.ForumSortPopular,
		})
		require.NoError(t, err)
		require.Len(t, page.Data, 3)
		assert.Equal(t, ids[1], page.Data[0].ID)
	})
}
