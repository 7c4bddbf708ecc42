// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"chronicle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{
		db:      db,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		MaxDays: 90,
	}
}

// pastTimestamp returns a created_at spread over the configured window so
// the ranked feed has something to rank.
func (f *Factory) pastTimestamp() time.Time {
	maxDays := f.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		GoogleID:      "seed-" + gofakeit.UUID(),
		Email:         gofakeit.Email(),
		EmailVerified: true,
		Name:          gofakeit.Name(),
		GivenName:     gofakeit.FirstName(),
		Picture:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAuthorProfile grants the given user authoring rights.
func (f *Factory) CreateAuthorProfile(user *models.User, overrides ...func(*models.AuthorProfile)) (*models.AuthorProfile, error) {
	profile := &models.AuthorProfile{
		UserID:  user.ID,
		PenName: gofakeit.Username(),
		Bio:     gofakeit.Sentence(12),
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreatePost constructs and persists a post of the given kind for the given
// author, with a realistic segment mix and category tags.
func (f *Factory) CreatePost(author *models.AuthorProfile, kind string, categories []string, overrides ...func(*models.Post)) (*models.Post, error) {
	content := []models.ContentSegment{
		{Kind: models.SegmentHeading, Body: gofakeit.Sentence(4)},
		{Kind: models.SegmentParagraph, Body: gofakeit.Paragraph(1, 4, 8, "\n")},
	}
	if f.rand.Intn(2) == 0 {
		content = append(content, models.ContentSegment{
			Kind: models.SegmentImage,
			Body: fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
		})
	}
	if f.rand.Intn(3) == 0 {
		content = append(content, models.ContentSegment{
			Kind: models.SegmentQuote,
			Body: gofakeit.Quote(),
		})
	}
	content = append(content, models.ContentSegment{
		Kind: models.SegmentParagraph,
		Body: gofakeit.Paragraph(1, 3, 6, "\n"),
	})

	post := &models.Post{
		Kind:       kind,
		Title:      gofakeit.Sentence(6),
		Headline:   gofakeit.Sentence(10),
		FrontImage: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Content:    content,
		AuthorID:   author.ID,
	}
	post.CreatedAt = f.pastTimestamp()

	for _, name := range categories {
		post.Categories = append(post.Categories, models.PostCategory{Name: name})
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(10),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateGallery constructs and persists a gallery with the given number of
// images for the given author.
func (f *Factory) CreateGallery(author *models.AuthorProfile, imageCount int, overrides ...func(*models.Gallery)) (*models.Gallery, error) {
	gallery := &models.Gallery{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Sentence(14),
		AuthorID:    author.ID,
	}
	for i := 0; i < imageCount; i++ {
		gallery.Images = append(gallery.Images, models.GalleryImage{
			URL:     fmt.Sprintf("https://picsum.photos/seed/%s/1600/1200", gofakeit.UUID()),
			Caption: gofakeit.Sentence(6),
		})
	}

	for _, override := range overrides {
		override(gallery)
	}

	if err := f.db.Create(gallery).Error; err != nil {
		return nil, err
	}
	return gallery, nil
}

// CreateGalleryLike persists a like from `user` on `gallery`.
func (f *Factory) CreateGalleryLike(user *models.User, gallery *models.Gallery) error {
	like := &models.GalleryLike{
		UserID:    user.ID,
		GalleryID: gallery.ID,
	}
	return f.db.Create(like).Error
}
