// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"chronicle/internal/cache"
	"chronicle/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort modes for post listings.
const (
	SortRecent = "recent"
	SortRanked = "ranked"
)

// summaryColumns is the projection for feed listings: everything except the
// content segments, so list pages never carry article bodies.
const summaryColumns = "posts.id, posts.kind, posts.title, posts.headline, posts.front_image, " +
	"posts.trending, posts.author_id, posts.created_at, posts.updated_at"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint, sort string) ([]*models.Post, error)
	ListByKind(ctx context.Context, kind string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	ListByCategory(ctx context.Context, category string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	ListLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	ListTrending(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	SetTrending(ctx context.Context, id uint, trending bool) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateHomeFeed(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	fetch := func(dest *models.Post, uid uint) error {
		return r.applyPostDetails(r.db.WithContext(ctx), uid, "posts.*").
			Preload("Author").
			Preload("Categories").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC")
			}).
			Preload("Comments.User").
			First(dest, id).Error
	}

	var err error
	if currentUserID == 0 {
		// Anonymous detail pages are identical for everyone, so cache them.
		err = cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
			return fetch(&post, 0)
		})
	} else {
		err = fetch(&post, currentUserID)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint, sort string) ([]*models.Post, error) {
	var posts []*models.Post
	base := r.applyPostDetails(r.db.WithContext(ctx), currentUserID, summaryColumns).
		Preload("Author").
		Preload("Categories")
	err := r.applySort(base, sort).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByKind(ctx context.Context, kind string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID, summaryColumns).
		Preload("Author").
		Preload("Categories").
		Where("posts.kind = ?", kind).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByCategory(ctx context.Context, category string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID, summaryColumns).
		Preload("Author").
		Preload("Categories").
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Where("post_categories.name = ?", category).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID, summaryColumns).
		Preload("Author").
		Preload("Categories").
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// ListLikedByUser projects the user's liked posts straight off the likes
// join table; ordering follows when the like was placed.
func (r *postRepository) ListLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), userID, summaryColumns).
		Preload("Author").
		Preload("Categories").
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListTrending(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID, summaryColumns).
		Preload("Author").
		Preload("Categories").
		Where("posts.trending = ?", true).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) SetTrending(ctx context.Context, id uint, trending bool) error {
	result := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("trending", trending)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// applySort appends the ORDER BY clause for the requested sort mode.
// likes_count is a SELECT alias from applyPostDetails and may be referenced
// in ORDER BY within the same query level.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortRanked:
		// likes*2 - hoursSincePost*0.5; the age expression differs per dialect
		if r.db.Dialector.Name() == "sqlite" {
			return db.Order(gorm.Expr(
				"(likes_count * 2.0 - ((julianday('now') - julianday(posts.created_at)) * 24.0) * 0.5) DESC",
			))
		}
		return db.Order(gorm.Expr(
			"(likes_count * 2.0 - (EXTRACT(EPOCH FROM (NOW() - posts.created_at)) / 3600.0) * 0.5) DESC",
		))
	default: // "recent" and anything unrecognized
		return db.Order("posts.created_at DESC")
	}
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
// All three values are projections of the likes/comments tables, never stored columns.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint, columns string) *gorm.DB {
	selectQuery := columns + ", " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories", "Comments", "Author").Save(post).Error; err != nil {
			return err
		}
		// Category rows are replaced wholesale on update
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		for i := range post.Categories {
			post.Categories[i].ID = 0
			post.Categories[i].PostID = post.ID
		}
		if len(post.Categories) > 0 {
			if err := tx.Create(&post.Categories).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidateHomeFeed(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateHomeFeed(ctx)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING: atomic, race-safe, and a no-op when
	// the like already exists
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&models.Like{UserID: userID, PostID: postID}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	// Hard delete the like record (not soft delete)
	err := r.db.WithContext(ctx).Unscoped().Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}
