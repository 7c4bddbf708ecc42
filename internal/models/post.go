package models

import (
	"time"

	"gorm.io/gorm"
)

// Post kinds. News posts feed getRecentNews; articles feed allArticles.
const (
	PostKindArticle = "article"
	PostKindNews    = "news"
)

// Content segment kinds. Image segments are stored with the durable blob
// URL as their body; the upload placeholder never reaches the database.
const (
	SegmentParagraph = "PARAGRAPH"
	SegmentHeading   = "HEADING"
	SegmentImage     = "IMAGE"
	SegmentQuote     = "QUOTE"
)

// ContentSegment is one ordered block of a post body.
type ContentSegment struct {
	Kind string `json:"type"`
	Body string `json:"body"`
}

type Post struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Kind       string           `gorm:"not null;index" json:"type"`
	Title      string           `gorm:"not null" json:"title"`
	Headline   string           `json:"headline"`
	FrontImage string           `json:"front_image"`
	Content    []ContentSegment `gorm:"serializer:json" json:"content,omitempty"`
	Trending   bool             `gorm:"not null;default:false;index" json:"trending"`
	AuthorID   uint             `gorm:"not null;index" json:"author_id"`
	Author     AuthorProfile    `gorm:"foreignKey:AuthorID" json:"author"`
	Categories []PostCategory   `gorm:"foreignKey:PostID" json:"categories,omitempty"`
	Comments   []Comment        `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	// LikesCount is not persisted; derived from the likes table at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostCategory is one category label attached to a post. A post carries one
// row per category so category filters stay portable across dialects.
type PostCategory struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	PostID uint   `gorm:"not null;uniqueIndex:idx_post_category" json:"-"`
	Name   string `gorm:"not null;index;uniqueIndex:idx_post_category" json:"name"`
}
