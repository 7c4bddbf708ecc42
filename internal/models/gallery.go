package models

import (
	"time"

	"gorm.io/gorm"
)

// Gallery is an author-curated image collection.
type Gallery struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Author      AuthorProfile  `gorm:"foreignKey:AuthorID" json:"author"`
	Images      []GalleryImage `gorm:"foreignKey:GalleryID" json:"images,omitempty"`
	// LikesCount is derived from gallery_likes at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this gallery (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GalleryImage is one uploaded image inside a gallery.
type GalleryImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GalleryID uint      `gorm:"not null;index" json:"gallery_id"`
	URL       string    `gorm:"not null" json:"url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}
