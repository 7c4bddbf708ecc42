package seed

import (
	"fmt"
	"log"

	"chronicle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumPosts     int
	NumGalleries int
	ShouldClean  bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d posts, %d galleries...",
		opts.NumUsers, opts.NumPosts, opts.NumGalleries)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	categories, err := Categories()
	if err != nil {
		return err
	}

	f := NewFactory(db)

	users, authors, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users (%d authors)", len(users), len(authors))

	posts, err := createPosts(f, authors, categories, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	commentCount, err := createComments(f, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("Created %d comments", commentCount)

	likeCount, err := addLikes(f, users, posts)
	if err != nil {
		return fmt.Errorf("failed to add likes: %w", err)
	}
	log.Printf("Added %d likes", likeCount)

	galleryCount, err := createGalleries(f, users, authors, opts.NumGalleries)
	if err != nil {
		return fmt.Errorf("failed to create galleries: %w", err)
	}
	log.Printf("Created %d galleries", galleryCount)

	log.Println("Database seeding completed successfully")
	return nil
}

// clearData removes prior seed data in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{
		"gallery_likes", "gallery_images", "galleries",
		"likes", "comments", "post_categories", "posts",
		"author_profiles", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, count int) ([]*models.User, []*models.AuthorProfile, error) {
	var users []*models.User
	var authors []*models.AuthorProfile

	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, nil, err
		}
		users = append(users, user)

		// Roughly a third of seeded users publish.
		if i%3 == 0 {
			profile, err := f.CreateAuthorProfile(user)
			if err != nil {
				return nil, nil, err
			}
			authors = append(authors, profile)
		}
	}
	return users, authors, nil
}

func createPosts(f *Factory, authors []*models.AuthorProfile, categories []string, count int) ([]*models.Post, error) {
	if len(authors) == 0 {
		return nil, fmt.Errorf("no authors to attribute posts to")
	}

	var posts []*models.Post
	for i := 0; i < count; i++ {
		author := authors[f.rand.Intn(len(authors))]

		kind := models.PostKindArticle
		if f.rand.Intn(4) == 0 {
			kind = models.PostKindNews
		}

		// One or two categories from the fixture vocabulary.
		tagged := []string{categories[f.rand.Intn(len(categories))]}
		if second := categories[f.rand.Intn(len(categories))]; second != tagged[0] {
			tagged = append(tagged, second)
		}

		post, err := f.CreatePost(author, kind, tagged, func(p *models.Post) {
			if f.rand.Intn(10) == 0 {
				p.Trending = true
			}
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(f *Factory, users []*models.User, posts []*models.Post) (int, error) {
	count := 0
	for _, post := range posts {
		for i := 0; i < f.rand.Intn(5); i++ {
			user := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(user, post); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func addLikes(f *Factory, users []*models.User, posts []*models.Post) (int, error) {
	count := 0
	for _, post := range posts {
		// Each post is liked by a random prefix of a shuffled user list so
		// the unique (user_id, post_id) constraint is never violated.
		perm := f.rand.Perm(len(users))
		likers := f.rand.Intn(len(users) + 1)
		for _, idx := range perm[:likers] {
			if err := f.CreateLike(users[idx], post); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func createGalleries(f *Factory, users []*models.User, authors []*models.AuthorProfile, count int) (int, error) {
	if len(authors) == 0 {
		return 0, fmt.Errorf("no authors to attribute galleries to")
	}

	created := 0
	for i := 0; i < count; i++ {
		author := authors[f.rand.Intn(len(authors))]
		gallery, err := f.CreateGallery(author, 3+f.rand.Intn(6))
		if err != nil {
			return created, err
		}
		created++

		perm := f.rand.Perm(len(users))
		likers := f.rand.Intn(len(users)/2 + 1)
		for _, idx := range perm[:likers] {
			if err := f.CreateGalleryLike(users[idx], gallery); err != nil {
				return created, err
			}
		}
	}
	return created, nil
}
