package service

import (
	"context"
	"fmt"
	"testing"

	"vireo/internal/models"

	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, string) (*models.Post, error)
	listFn         func(context.Context, int, int) ([]*models.Post, error)
	listByAuthorFn func(context.Context, uint, int, int) ([]*models.AuthorPost, error)
	updateLikesFn  func(context.Context, string, func(int64) int64) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.AuthorPost, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) UpdateLikes(ctx context.Context, id string, apply func(int64) int64) (int64, error) {
	return s.updateLikesFn(ctx, id, apply)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]*models.AuthorPost, error) {
			return nil, nil
		},
		updateLikesFn: func(_ context.Context, _ string, apply func(int64) int64) (int64, error) {
			return apply(0), nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, string) (*models.Comment, error)
	listByPostFn func(context.Context, string) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
	}
}

// storeStub records blob store calls.
type storeStub struct {
	puts  int
	fails bool
}

func (s *storeStub) Put(authorID uint, filename string, _ []byte) (string, error) {
	s.puts++
	if s.fails {
		return "", fmt.Errorf("disk full")
	}
	return fmt.Sprintf("/media/u/%d/%s", authorID, filename), nil
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
