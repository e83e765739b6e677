package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCourseRepository(db, 1)
	rows := sqlmock.NewRows([]string{"id", "shortname", "fullname", "summary", "startdate", "enddate", "visible"}).
		AddRow(2, "GO", "Go Basics", "<p>Intro</p>", 1690000000, 1700000000, 1).
		AddRow(3, "SQL", "SQL Basics", "", 0, 0, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id, c.shortname, c.fullname")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	courses, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, int64(2), courses[0].ID)
	require.Equal(t, "Go Basics", courses[0].Fullname)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListActiveError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCourseRepository(db, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id, c.shortname, c.fullname")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ListActive(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
