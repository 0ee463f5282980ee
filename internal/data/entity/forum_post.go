package entity

type ForumCategory string

const (
	ForumCategoryCriminal   ForumCategory = "criminal"
	ForumCategoryFamily     ForumCategory = "family"
	ForumCategoryProperty   ForumCategory = "property"
	ForumCategoryCivil      ForumCategory = "civil"
	ForumCategoryConsumer   ForumCategory = "consumer"
	ForumCategoryEmployment ForumCategory = "employment"
)

// ForumPost is one community question. Votes and Replies are
// denormalized counters maintained with atomic SQL increments, never
// patched from client state.
type ForumPost struct {
	Base
	Title       string        `db:"title"`
	Content     string        `db:"content"`
	Category    ForumCategory `db:"category"`
	Author      string        `db:"author"`
	AuthorEmail string        `db:"author_email"`
	Votes       int           `db:"votes"`
	Replies     int           `db:"replies"`
	Tags        []string      `db:"tags"`
}
