package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"chronicle/internal/database"
	"chronicle/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	// Set environment to test
	os.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Repository tests skipped: sqlite unavailable: %v", err)
		os.Exit(0)
	}

	// A shared in-memory database lives as long as one connection holds it open.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Repository tests: migration failed: %v", err)
	}

	testDB = db
	os.Exit(m.Run())
}

var fixtureSeq atomic.Uint64

// createTestUser inserts a user with a unique google_id.
func createTestUser(t *testing.T) *models.User {
	t.Helper()
	n := fixtureSeq.Add(1)
	user := &models.User{
		GoogleID:      fmt.Sprintf("test-sub-%d", n),
		Email:         fmt.Sprintf("user%d@example.com", n),
		EmailVerified: true,
		Name:          fmt.Sprintf("User %d", n),
	}
	if err := testDB.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// createTestAuthor inserts a user plus an author profile.
func createTestAuthor(t *testing.T) (*models.User, *models.AuthorProfile) {
	t.Helper()
	user := createTestUser(t)
	profile := &models.AuthorProfile{
		UserID:  user.ID,
		PenName: "pen-" + user.GoogleID,
	}
	if err := testDB.Create(profile).Error; err != nil {
		t.Fatalf("create test author profile: %v", err)
	}
	return user, profile
}

// createTestPost inserts a post for the given author profile.
func createTestPost(t *testing.T, authorID uint, overrides ...func(*models.Post)) *models.Post {
	t.Helper()
	n := fixtureSeq.Add(1)
	post := &models.Post{
		Kind:     models.PostKindArticle,
		Title:    fmt.Sprintf("Post %d", n),
		AuthorID: authorID,
		Content: []models.ContentSegment{
			{Kind: models.SegmentParagraph, Body: "body"},
		},
	}
	for _, o := range overrides {
		o(post)
	}
	if err := testDB.Create(post).Error; err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return post
}

func createTestGallery(t *testing.T, authorID uint, imageCount int) *models.Gallery {
	t.Helper()
	n := fixtureSeq.Add(1)
	gallery := &models.Gallery{
		Title:    fmt.Sprintf("Gallery %d", n),
		AuthorID: authorID,
	}
	for i := 0; i < imageCount; i++ {
		gallery.Images = append(gallery.Images, models.GalleryImage{
			URL:     fmt.Sprintf("https://blob.test/g%d-%d.jpg", n, i),
			Caption: fmt.Sprintf("caption %d", i),
		})
	}
	if err := testDB.Create(gallery).Error; err != nil {
		t.Fatalf("create test gallery: %v", err)
	}
	return gallery
}

// pastTime returns a timestamp the given number of hours in the past.
func pastTime(hours float64) time.Time {
	return time.Now().Add(-time.Duration(hours * float64(time.Hour)))
}

func testCtx() context.Context {
	return context.Background()
}
