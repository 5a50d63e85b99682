package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%s"
	AuthorPostsPrefix  = "author:%d:posts"
	FeedFirstPageKey   = "feed:page:first"
	WSTicketPrefix     = "ws_ticket:%s"
	JTIBlacklistPrefix = "jwt_blacklist:%s"
	RateLimitKeyPrefix = "rl:%s:%s"
)

// FirstPageLimit is the only page size the first-page caches store. Requests
// with any other limit bypass the cache, so a smaller page can never be
// served to a caller that asked for the full one.
const FirstPageLimit = 20

const (
	UserTTL        = 5 * time.Minute
	PostTTL        = 30 * time.Minute
	FeedPageTTL    = 30 * time.Second
	AuthorPostsTTL = 30 * time.Second
	WSTicketTTL    = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID string) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func AuthorPostsKey(authorID uint) string {
	return fmt.Sprintf(AuthorPostsPrefix, authorID)
}

func WSTicketKey(ticket string) string {
	return fmt.Sprintf(WSTicketPrefix, ticket)
}

func JTIBlacklistKey(jti string) string {
	return fmt.Sprintf(JTIBlacklistPrefix, jti)
}

// RateLimitKey builds the fixed-window counter key for a resource and caller
// identity (user or IP).
func RateLimitKey(resource, id string) string {
	return fmt.Sprintf(RateLimitKeyPrefix, resource, id)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed drops the cached first feed page. Called after any write
// that changes what the feed replays.
func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedFirstPageKey)
}

func InvalidateAuthorPosts(ctx context.Context, authorID uint) {
	Invalidate(ctx, AuthorPostsKey(authorID))
}
