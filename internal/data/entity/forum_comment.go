package entity

import (
	"github.com/google/uuid"
)

type ForumComment struct {
	BaseSimple
	PostID      uuid.UUID `db:"post_id"`
	Author      string    `db:"author"`
	AuthorEmail string    `db:"author_email"`
	Content     string    `db:"content"`
}
