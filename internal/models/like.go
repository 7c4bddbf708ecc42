package models

import "time"

// Like records that a user likes a post. The (UserID, PostID) pair is
// unique and is the single source of truth for engagement: the post's
// counter, its liker list and the user's liked-post list are all derived
// from these rows by query.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}

// GalleryLike is the gallery counterpart of Like.
type GalleryLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_gallery" json:"user_id"`
	GalleryID uint      `gorm:"not null;uniqueIndex:idx_user_gallery" json:"gallery_id"`
	CreatedAt time.Time `json:"created_at"`
}
