package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-hris-api/internal/models"
)

var participantColumns = []string{
	"user_id", "email", "firstname", "lastname", "company_name",
	"course_id", "course_shortname", "course_name", "enrollment_date",
}

func TestParticipantRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewParticipantRepository(db, 1, "branch")
	rows := sqlmock.NewRows(participantColumns).
		AddRow(7, "ada@acme.example", "Ada", "L", "Acme", 3, "GO", "Go Basics", 1690000000)
	mock.ExpectQuery(regexp.QuoteMeta("MIN(ue.timecreated) AS enrollment_date")).
		WithArgs(int64(1), "branch").
		WillReturnRows(rows)

	participants, err := repo.List(context.Background(), models.ParticipantFilter{})
	require.NoError(t, err)
	require.Len(t, participants, 1)
	require.Equal(t, int64(7), participants[0].UserID)
	require.Equal(t, "Acme", participants[0].CompanyName)
	require.Equal(t, int64(1690000000), participants[0].EnrollmentDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryListCourseFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewParticipantRepository(db, 1, "branch")
	mock.ExpectQuery(regexp.QuoteMeta("AND c.id = $3")).
		WithArgs(int64(1), "branch", int64(42)).
		WillReturnRows(sqlmock.NewRows(participantColumns))

	participants, err := repo.List(context.Background(), models.ParticipantFilter{CourseID: 42})
	require.NoError(t, err)
	require.Empty(t, participants)
	require.NoError(t, mock.ExpectationsWereMet())
}
