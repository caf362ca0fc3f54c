package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Delete_CascadesLikes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// Likes on the comment go first, then the comment, in one transaction.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE comment_id = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(ctx, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_RollsBackOnLikeFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE comment_id = $1`)).
		WithArgs(5).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	require.Error(t, repo.Delete(ctx, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
