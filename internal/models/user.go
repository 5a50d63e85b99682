// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Fallbacks rendered when a user record is missing display data.
const (
	FallbackDisplayName = "Usuário"
	FallbackAvatarURL   = "https://via.placeholder.com/40"
)

// User represents a registered account.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Name returns the user's display name, falling back to the username and
// finally to the fallback literal.
func (u *User) Name() string {
	if u == nil {
		return FallbackDisplayName
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Username != "" {
		return u.Username
	}
	return FallbackDisplayName
}

// Avatar returns the user's avatar URL or the placeholder.
func (u *User) Avatar() string {
	if u == nil || u.AvatarURL == "" {
		return FallbackAvatarURL
	}
	return u.AvatarURL
}
