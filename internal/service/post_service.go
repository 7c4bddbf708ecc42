package service

import (
	"context"
	"strings"

	"chronicle/internal/cache"
	"chronicle/internal/media"
	"chronicle/internal/models"
	"chronicle/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	uploader media.Uploader
}

// CreatePostInput carries a new post through validation, media ingestion and
// persistence. Images maps content placeholder names to the uploaded file
// parts that will replace them.
type CreatePostInput struct {
	UserID     uint
	Kind       string
	Title      string
	Headline   string
	Categories []string
	Content    []models.ContentSegment
	FrontImage *media.UploadInput
	// FrontImageURL is accepted for JSON-only bodies with a pre-uploaded image
	FrontImageURL string
	Images        map[string]media.UploadInput
}

type UpdatePostInput struct {
	UserID     uint
	PostID     uint
	Title      string
	Headline   string
	FrontImage string
	Categories []string
	Content    []models.ContentSegment
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Sort          string
}

const (
	maxTitleLen    = 300
	maxHeadlineLen = 500
	maxSegmentLen  = 50000
	maxSegments    = 200
	maxCategories  = 10
)

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	uploader media.Uploader,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

// requireAuthorProfile returns the caller's author profile or a Forbidden error.
func (s *PostService) requireAuthorProfile(ctx context.Context, userID uint) (*models.AuthorProfile, error) {
	profile, err := s.userRepo.GetAuthorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewForbiddenError("Only authors can perform this action")
	}
	return profile, nil
}

// requireOwnership loads the post and verifies it belongs to the caller's
// author profile.
func (s *PostService) requireOwnership(ctx context.Context, userID, postID uint) (*models.Post, *models.AuthorProfile, error) {
	profile, err := s.requireAuthorProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, nil, err
	}
	if post.AuthorID != profile.ID {
		return nil, nil, models.NewForbiddenError("You can only modify your own posts")
	}
	return post, profile, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	profile, err := s.requireAuthorProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	switch in.Kind {
	case models.PostKindArticle, models.PostKindNews:
		// valid
	default:
		return nil, models.NewValidationError("Post type must be article or news")
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Headline) > maxHeadlineLen {
		return nil, models.NewValidationError("Headline too long (max 500 characters)")
	}

	categories, err := normalizeCategories(in.Categories)
	if err != nil {
		return nil, err
	}

	content, err := validateSegments(in.Content)
	if err != nil {
		return nil, err
	}

	frontImage := strings.TrimSpace(in.FrontImageURL)
	if in.FrontImage != nil {
		result, err := s.uploader.Upload(ctx, *in.FrontImage)
		if err != nil {
			return nil, err
		}
		frontImage = result.URL
	}

	content, err = s.resolveImageSegments(ctx, content, in.Images)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Kind:       in.Kind,
		Title:      in.Title,
		Headline:   in.Headline,
		FrontImage: frontImage,
		Content:    content,
		AuthorID:   profile.ID,
	}
	for _, name := range categories {
		post.Categories = append(post.Categories, models.PostCategory{Name: name})
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// resolveImageSegments replaces IMAGE placeholder bodies with durable blob
// URLs before anything reaches the database. Bodies that are already URLs
// (pre-uploaded images) pass through untouched.
func (s *PostService) resolveImageSegments(ctx context.Context, segments []models.ContentSegment, images map[string]media.UploadInput) ([]models.ContentSegment, error) {
	for i, seg := range segments {
		if seg.Kind != models.SegmentImage {
			continue
		}
		if strings.HasPrefix(seg.Body, "http://") || strings.HasPrefix(seg.Body, "https://") {
			continue
		}
		upload, ok := images[seg.Body]
		if !ok {
			return nil, models.NewValidationError("Image segment references a missing file part: " + seg.Body)
		}
		result, err := s.uploader.Upload(ctx, upload)
		if err != nil {
			return nil, err
		}
		segments[i].Body = result.URL
	}
	return segments, nil
}

func validateSegments(segments []models.ContentSegment) ([]models.ContentSegment, error) {
	if len(segments) > maxSegments {
		return nil, models.NewValidationError("Too many content segments (max 200)")
	}
	for _, seg := range segments {
		switch seg.Kind {
		case models.SegmentParagraph, models.SegmentHeading, models.SegmentImage, models.SegmentQuote:
			// valid
		default:
			return nil, models.NewValidationError("Unknown content segment type: " + seg.Kind)
		}
		if len(seg.Body) > maxSegmentLen {
			return nil, models.NewValidationError("Content segment too long (max 50000 characters)")
		}
	}
	return segments, nil
}

func normalizeCategories(raw []string) ([]string, error) {
	if len(raw) > maxCategories {
		return nil, models.NewValidationError("Too many categories (max 10)")
	}
	seen := map[string]struct{}{}
	var out []string
	for _, c := range raw {
		name := strings.ToLower(strings.TrimSpace(c))
		if name == "" {
			continue
		}
		if len(name) > 50 {
			return nil, models.NewValidationError("Category name too long (max 50 characters)")
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// GetHomePosts returns the feed summary projection. The anonymous first page
// is served cache-aside since it is identical for every visitor.
func (s *PostService) GetHomePosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	sort := in.Sort
	if sort != repository.SortRanked {
		sort = repository.SortRecent
	}

	var posts []*models.Post
	if in.CurrentUserID == 0 && in.Offset == 0 && in.Limit <= 20 {
		err := cache.Aside(ctx, cache.HomeFeedKey(sort), &posts, cache.HomeFeedTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset, 0, sort)
			return fetchErr
		})
		return posts, err
	}

	return s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID, sort)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) GetRecentNews(ctx context.Context, count int, currentUserID uint) ([]*models.Post, error) {
	if count <= 0 {
		return nil, models.NewValidationError("Count must be positive")
	}
	if count > 50 {
		count = 50
	}
	return s.postRepo.ListByKind(ctx, models.PostKindNews, count, 0, currentUserID)
}

func (s *PostService) GetCategory(ctx context.Context, category string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	name := strings.ToLower(strings.TrimSpace(category))
	if name == "" {
		return nil, models.NewValidationError("Category is required")
	}
	return s.postRepo.ListByCategory(ctx, name, limit, offset, currentUserID)
}

func (s *PostService) AllArticles(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.ListByKind(ctx, models.PostKindArticle, limit, offset, currentUserID)
}

func (s *PostService) GetTrending(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.ListTrending(ctx, limit, offset, currentUserID)
}

// SetTrending flags or unflags the caller's own post for the trending list.
func (s *PostService) SetTrending(ctx context.Context, userID, postID uint, trending bool) error {
	if _, _, err := s.requireOwnership(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.SetTrending(ctx, postID, trending)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, _, err := s.requireOwnership(ctx, in.UserID, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = in.Title
	}
	if in.Headline != "" {
		if len(in.Headline) > maxHeadlineLen {
			return nil, models.NewValidationError("Headline too long (max 500 characters)")
		}
		post.Headline = in.Headline
	}
	if in.FrontImage != "" {
		post.FrontImage = in.FrontImage
	}
	if in.Content != nil {
		content, err := validateSegments(in.Content)
		if err != nil {
			return nil, err
		}
		post.Content = content
	}
	if in.Categories != nil {
		categories, err := normalizeCategories(in.Categories)
		if err != nil {
			return nil, err
		}
		post.Categories = nil
		for _, name := range categories {
			post.Categories = append(post.Categories, models.PostCategory{Name: name})
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewUpdateFailedError("post", err)
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if _, _, err := s.requireOwnership(ctx, in.UserID, in.PostID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, in.PostID)
}
