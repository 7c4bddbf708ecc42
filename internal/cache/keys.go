package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	HomeFeedKeyPrefix = "feed:home:%s"
	GalleriesKey      = "galleries:all"
	ClaimsKeyPrefix   = "claims:%s"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 30 * time.Minute
	HomeFeedTTL  = 30 * time.Second
	GalleriesTTL = 5 * time.Minute
	// ClaimsMaxTTL bounds how long verified provider claims may be reused;
	// the actual TTL is capped by the token's own remaining validity.
	ClaimsMaxTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// HomeFeedKey keys the anonymous first page of the home feed per sort mode.
func HomeFeedKey(sort string) string {
	return fmt.Sprintf(HomeFeedKeyPrefix, sort)
}

// ClaimsKey keys verified identity claims by credential digest.
func ClaimsKey(digest string) string {
	return fmt.Sprintf(ClaimsKeyPrefix, digest)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateHomeFeed drops both sort variants of the cached first page.
func InvalidateHomeFeed(ctx context.Context) {
	Invalidate(ctx, HomeFeedKey("recent"))
	Invalidate(ctx, HomeFeedKey("ranked"))
}

func InvalidateGalleries(ctx context.Context) {
	Invalidate(ctx, GalleriesKey)
}
