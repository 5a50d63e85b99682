package models

import (
	"time"
)

// Comment is an immutable comment on a post. The ID is a push key scoped to
// the post, so ascending ID order is append order.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:26" json:"id"`
	PostID    string    `gorm:"index;size:26;not null" json:"post_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is the JSON shape handed to clients.
type CommentView struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AvatarURL  string    `json:"avatar_url"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
