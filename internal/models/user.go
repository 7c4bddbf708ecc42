// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a reader or author account backed by a Google identity.
// GoogleID is the OAuth subject claim and is the canonical identity key;
// email is stored for display only and may change between logins.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	GoogleID      string         `gorm:"unique;not null" json:"google_id"`
	Email         string         `gorm:"not null;index" json:"email"`
	EmailVerified bool           `json:"email_verified"`
	Name          string         `json:"name"`
	GivenName     string         `json:"given_name"`
	Picture       string         `json:"picture"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	AuthorProfile *AuthorProfile `gorm:"foreignKey:UserID" json:"author_profile,omitempty"`
}

// AuthorProfile is held by users allowed to publish posts and galleries.
type AuthorProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"unique;not null" json:"user_id"`
	PenName   string         `gorm:"not null" json:"pen_name"`
	Bio       string         `json:"bio"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
