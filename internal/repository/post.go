// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"vireo/internal/cache"
	"vireo/internal/models"
	"vireo/internal/observability"

	"gorm.io/gorm"
)

// ErrConcurrentUpdate is returned when a compare-and-update keeps losing to
// concurrent writers after the retry budget is spent.
var ErrConcurrentUpdate = errors.New("concurrent update retries exhausted")

// maxCounterRetries bounds the compare-and-update retry loop. A retry only
// happens when another writer committed between the read and the update, and
// every lost round means some other writer made progress, so the bound is
// only reachable under sustained contention.
const maxCounterRetries = 32

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.AuthorPost, error)
	UpdateLikes(ctx context.Context, id string, apply func(current int64) int64) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

// Create writes the global record and the per-author index entry in one
// transaction, so either both copies exist or neither does.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		entry := post.IndexEntry()
		return tx.Create(&entry).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}

	r.log.LogWrite(ctx, "create", map[string]interface{}{"post_id": post.ID})
	cache.InvalidateFeed(ctx)
	cache.InvalidateAuthorPosts(ctx, post.AuthorID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := cache.CacheAside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Author").
			First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts in reverse push-key order, which is reverse creation
// order: the feed replays newest first.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthor serves from the per-author index, not the global collection.
// The default first page is cached; publishing invalidates it.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.AuthorPost, error) {
	defer observability.TrackQuery("list", "author_posts")()

	var posts []*models.AuthorPost
	fetch := func() error {
		return r.db.WithContext(ctx).
			Where("author_id = ?", authorID).
			Order("id DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	}

	if offset == 0 && limit == cache.FirstPageLimit {
		if err := cache.CacheAside(ctx, cache.AuthorPostsKey(authorID), &posts, cache.AuthorPostsTTL, fetch); err != nil {
			return nil, err
		}
		return posts, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateLikes applies a read-modify-write to the like counter. The caller's
// apply function sees the current committed value; the UPDATE only lands if
// the row is unchanged since the read, otherwise the loop retries against the
// fresh value. Losing writers retry, so no update is lost.
func (r *postRepository) UpdateLikes(ctx context.Context, id string, apply func(current int64) int64) (int64, error) {
	defer observability.TrackQuery("update", "posts")()

	for attempt := 0; attempt < maxCounterRetries; attempt++ {
		var post models.Post
		if err := r.db.WithContext(ctx).
			Select("id", "likes").
			First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, models.NewNotFoundError("Post", id)
			}
			return 0, err
		}

		next := apply(post.Likes)

		res := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ? AND likes = ?", id, post.Likes).
			Update("likes", next)
		if res.Error != nil {
			r.log.LogError(ctx, res.Error, "update_likes")
			return 0, res.Error
		}
		if res.RowsAffected == 1 {
			cache.InvalidatePost(ctx, id)
			cache.InvalidateFeed(ctx)
			return next, nil
		}

		// Another writer committed between our read and update.
		observability.LikeRetriesTotal.Inc()
	}

	r.log.LogError(ctx, ErrConcurrentUpdate, "update_likes")
	return 0, ErrConcurrentUpdate
}
