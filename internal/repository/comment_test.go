package repository

import (
	"testing"

	"vireo/internal/keys"
	"vireo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentListByPostAppendOrder(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	author := seedUser(t, db, "alice")
	post := seedPost(t, db, postRepo, author.ID, "post with comments")

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		c := &models.Comment{
			ID:       keys.New(),
			PostID:   post.ID,
			AuthorID: author.ID,
			Text:     text,
		}
		require.NoError(t, commentRepo.Create(t.Context(), c))
	}

	comments, err := commentRepo.ListByPost(t.Context(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i, text := range texts {
		assert.Equal(t, text, comments[i].Text, "comments replay in append order")
	}
	assert.Equal(t, "alice", comments[0].Author.Username)
}

func TestCommentAppendDoesNotTouchSiblings(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	author := seedUser(t, db, "alice")
	post := seedPost(t, db, postRepo, author.ID, "post")

	first := &models.Comment{ID: keys.New(), PostID: post.ID, AuthorID: author.ID, Text: "first"}
	require.NoError(t, commentRepo.Create(t.Context(), first))

	var before models.Comment
	require.NoError(t, db.First(&before, "id = ?", first.ID).Error)

	second := &models.Comment{ID: keys.New(), PostID: post.ID, AuthorID: author.ID, Text: "second"}
	require.NoError(t, commentRepo.Create(t.Context(), second))

	var after models.Comment
	require.NoError(t, db.First(&after, "id = ?", first.ID).Error)
	assert.Equal(t, before.Text, after.Text)
	assert.Equal(t, before.CreatedAt.UnixNano(), after.CreatedAt.UnixNano())
}

func TestCommentsScopedToPost(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	author := seedUser(t, db, "alice")
	postA := seedPost(t, db, postRepo, author.ID, "post a")
	postB := seedPost(t, db, postRepo, author.ID, "post b")

	require.NoError(t, commentRepo.Create(t.Context(), &models.Comment{
		ID: keys.New(), PostID: postA.ID, AuthorID: author.ID, Text: "on a",
	}))
	require.NoError(t, commentRepo.Create(t.Context(), &models.Comment{
		ID: keys.New(), PostID: postB.ID, AuthorID: author.ID, Text: "on b",
	}))

	comments, err := commentRepo.ListByPost(t.Context(), postA.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "on a", comments[0].Text)
}

func TestCommentGetByID(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	author := seedUser(t, db, "alice")
	post := seedPost(t, db, postRepo, author.ID, "post")

	c := &models.Comment{ID: keys.New(), PostID: post.ID, AuthorID: author.ID, Text: "hello"}
	require.NoError(t, commentRepo.Create(t.Context(), c))

	got, err := commentRepo.GetByID(t.Context(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)

	_, err = commentRepo.GetByID(t.Context(), keys.New())
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
