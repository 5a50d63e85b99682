package service

import (
	"context"
	"log/slog"
	"strings"

	"vireo/internal/cache"
	"vireo/internal/keys"
	"vireo/internal/middleware"
	"vireo/internal/models"
	"vireo/internal/observability"
	"vireo/internal/repository"
	"vireo/internal/sanitize"
)

// BlobStore is the slice of the media store the post service needs.
type BlobStore interface {
	Put(authorID uint, filename string, data []byte) (string, error)
}

type PostService struct {
	postRepo     repository.PostRepository
	store        BlobStore
	maxFileBytes int64
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Body     string
	Tags     string
	FileName string
	FileData []byte
}

const (
	maxTitleLen = 300
	maxBodyLen  = 50000 // 50K characters
)

func NewPostService(postRepo repository.PostRepository, store BlobStore, maxFileBytes int64) *PostService {
	return &PostService{
		postRepo:     postRepo,
		store:        store,
		maxFileBytes: maxFileBytes,
	}
}

// CreatePost validates, sanitizes and publishes a post. The blob upload
// happens before the database write; if the write fails the blob is kept,
// the caller just gets the error.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}

	body := sanitize.Body(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	if len(in.FileData) == 0 || in.FileName == "" {
		return nil, models.NewValidationError("Exactly one file is required")
	}
	if s.maxFileBytes > 0 && int64(len(in.FileData)) > s.maxFileBytes {
		return nil, models.NewValidationError("File too large")
	}

	mediaType := DetectMediaType(in.FileData)
	if mediaType == models.MediaTypeImage {
		if err := validateImage(in.FileData); err != nil {
			return nil, err
		}
	}

	fileURL, err := s.store.Put(in.AuthorID, in.FileName, in.FileData)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.MediaUploadBytes.Observe(float64(len(in.FileData)))

	post := &models.Post{
		ID:        keys.New(),
		AuthorID:  in.AuthorID,
		Title:     strings.TrimSpace(in.Title),
		Body:      body,
		Tags:      strings.TrimSpace(in.Tags),
		FileURL:   fileURL,
		MediaType: mediaType,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// ListFeed replays the post collection newest first. The default first page
// is served cache-aside from Redis; any other limit goes straight to the
// database, since the cache holds exactly one page shape.
func (s *PostService) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post

	if offset == 0 && limit == cache.FirstPageLimit {
		err := cache.CacheAside(ctx, cache.FeedFirstPageKey, &posts, cache.FeedPageTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, limit, offset)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetUserPosts serves the per-author index written at publish time.
func (s *PostService) GetUserPosts(ctx context.Context, authorID uint, limit, offset int) ([]*models.AuthorPost, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
}

// LikePost increments the post's like counter and returns the new count.
// The counter only moves up; concurrent likes all land.
func (s *PostService) LikePost(ctx context.Context, postID string) (int64, error) {
	return s.postRepo.UpdateLikes(ctx, postID, func(current int64) int64 {
		return current + 1
	})
}

// ReportPost acknowledges a report. Nothing is persisted; the report is
// logged for operators and the caller gets a confirmation.
func (s *PostService) ReportPost(ctx context.Context, reporterID uint, postID string) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "post reported",
		slog.String("post_id", postID),
		slog.Uint64("reporter_id", uint64(reporterID)),
	)
	return nil
}
