package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestQuizRepositoryMaxClassifiedGrade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewQuizRepository(db, "jenis_quiz")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(gg.finalgrade) AS score")).
		WithArgs(int64(7), int64(3), "2", "jenis_quiz").
		WillReturnRows(sqlmock.NewRows([]string{"score"}).AddRow(87.5))

	score, found, err := repo.MaxClassifiedGrade(context.Background(), 7, 3, "2")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 87.5, score)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepositoryMaxClassifiedGradeNullAggregate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewQuizRepository(db, "jenis_quiz")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(gg.finalgrade) AS score")).
		WithArgs(int64(7), int64(3), "3", "jenis_quiz").
		WillReturnRows(sqlmock.NewRows([]string{"score"}).AddRow(nil))

	score, found, err := repo.MaxClassifiedGrade(context.Background(), 7, 3, "3")
	require.NoError(t, err)
	require.False(t, found)
	require.Zero(t, score)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepositoryMaxClassifiedGradeNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewQuizRepository(db, "jenis_quiz")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(gg.finalgrade) AS score")).
		WithArgs(int64(7), int64(3), "2", "jenis_quiz").
		WillReturnRows(sqlmock.NewRows([]string{"score"}))

	score, found, err := repo.MaxClassifiedGrade(context.Background(), 7, 3, "2")
	require.NoError(t, err)
	require.False(t, found)
	require.Zero(t, score)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepositoryMaxClassifiedGradeError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewQuizRepository(db, "jenis_quiz")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(gg.finalgrade) AS score")).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.MaxClassifiedGrade(context.Background(), 7, 3, "2")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
