package models

import (
	"time"
)

// MediaType classifies the attached file of a post. It is detected once at
// publish time by content sniffing and stored, never re-derived from the URL.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeOther MediaType = "other"
)

// Post is the global-collection record of a published post. The ID is a push
// key: lexicographic order equals creation order.
type Post struct {
	ID        string    `gorm:"primaryKey;size:26" json:"id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Tags      string    `json:"tags"`
	FileURL   string    `gorm:"not null" json:"file_url"`
	MediaType MediaType `gorm:"size:8;not null" json:"media_type"`
	Likes     int64     `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`

	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

// AuthorPost is the per-author index copy written alongside Post in the same
// transaction. It shares the post's push key and is identical to the global
// record at publish time; later like mutations touch only the global copy.
type AuthorPost struct {
	AuthorID  uint      `gorm:"primaryKey;autoIncrement:false" json:"author_id"`
	ID        string    `gorm:"primaryKey;size:26" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Tags      string    `json:"tags"`
	FileURL   string    `gorm:"not null" json:"file_url"`
	MediaType MediaType `gorm:"size:8;not null" json:"media_type"`
	Likes     int64     `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// IndexEntry derives the per-author index record from a post.
func (p *Post) IndexEntry() AuthorPost {
	return AuthorPost{
		AuthorID:  p.AuthorID,
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		Tags:      p.Tags,
		FileURL:   p.FileURL,
		MediaType: p.MediaType,
		Likes:     p.Likes,
		CreatedAt: p.CreatedAt,
	}
}

// PostView is the JSON shape handed to feed clients.
type PostView struct {
	ID         string    `json:"id"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AvatarURL  string    `json:"avatar_url"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Tags       []string  `json:"tags"`
	FileURL    string    `json:"file_url"`
	MediaType  MediaType `json:"media_type"`
	Likes      int64     `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
}
