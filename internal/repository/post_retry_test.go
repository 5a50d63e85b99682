package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const retryPostID = "01ARZ3NDEKTSV4RRFFQ69G5FAV"

func expectLikesRead(mock sqlmock.Sqlmock, current int64) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","likes" FROM "posts" WHERE id = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(retryPostID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "likes"}).AddRow(retryPostID, current))
}

func expectLikesCAS(mock sqlmock.Sqlmock, read, next, affected int64) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "likes"=$1 WHERE id = $2 AND likes = $3`)).
		WithArgs(next, retryPostID, read).
		WillReturnResult(sqlmock.NewResult(0, affected))
	mock.ExpectCommit()
}

// A concurrent writer bumps the counter between our read and update; the
// repository must re-read and apply against the fresh value.
func TestUpdateLikesRetriesOnConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	// First round: read 3, CAS to 4 loses (0 rows affected).
	expectLikesRead(mock, 3)
	expectLikesCAS(mock, 3, 4, 0)

	// Second round: read the winner's 4, CAS to 5 lands.
	expectLikesRead(mock, 4)
	expectLikesCAS(mock, 4, 5, 1)

	count, err := repo.UpdateLikes(t.Context(), retryPostID, func(current int64) int64 {
		return current + 1
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLikesGivesUpAfterRetryBudget(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	for i := 0; i < maxCounterRetries; i++ {
		expectLikesRead(mock, int64(i))
		expectLikesCAS(mock, int64(i), int64(i)+1, 0)
	}

	_, err := repo.UpdateLikes(t.Context(), retryPostID, func(current int64) int64 {
		return current + 1
	})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
