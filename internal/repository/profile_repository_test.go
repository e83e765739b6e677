package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestProfileRepositoryAttribute(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewProfileRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT uid.data")).
		WithArgs(int64(7), "branch").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow("Acme"))

	value, found, err := repo.Attribute(context.Background(), 7, "branch")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Acme", value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryAttributeAbsent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewProfileRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT uid.data")).
		WithArgs(int64(7), "branch").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	value, found, err := repo.Attribute(context.Background(), 7, "branch")
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, value)
	require.NoError(t, mock.ExpectationsWereMet())
}
