package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-hris-api/internal/models"
	appErrors "github.com/noah-isme/lms-hris-api/pkg/errors"
)

type fakeCourseRepo struct {
	courses []models.CourseRecord
	err     error
	calls   int
}

func (f *fakeCourseRepo) ListActive(context.Context) ([]models.CourseRecord, error) {
	f.calls++
	return f.courses, f.err
}

type fakeParticipantRepo struct {
	participants []models.ParticipantRecord
	lastFilter   models.ParticipantFilter
	calls        int
}

func (f *fakeParticipantRepo) List(_ context.Context, filter models.ParticipantFilter) ([]models.ParticipantRecord, error) {
	f.calls++
	f.lastFilter = filter
	return f.participants, nil
}

type fakeResultRepo struct {
	rows       []models.ResultBaseRow
	lastFilter models.ResultFilter
	err        error
	calls      int
}

func (f *fakeResultRepo) ListBase(_ context.Context, filter models.ResultFilter) ([]models.ResultBaseRow, error) {
	f.calls++
	f.lastFilter = filter
	return f.rows, f.err
}

type fakeScores struct {
	pre    float64
	post   float64
	survey models.QuestionnaireScores
	err    error
}

func (f *fakeScores) QuizScore(_ context.Context, _, _ int64, kind QuizKind) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if kind == QuizPost {
		return f.post, nil
	}
	return f.pre, nil
}

func (f *fakeScores) QuestionnaireScores(context.Context, int64, int64) models.QuestionnaireScores {
	return f.survey
}

func newReportService(courses *fakeCourseRepo, participants *fakeParticipantRepo, results *fakeResultRepo, scores *fakeScores) *ReportService {
	return NewReportService(NewAccessService("k"), courses, participants, results, scores, nil, nil, nil)
}

func TestActiveCoursesRejectsBadKeyBeforeQuerying(t *testing.T) {
	courses := &fakeCourseRepo{}
	svc := newReportService(courses, &fakeParticipantRepo{}, &fakeResultRepo{}, &fakeScores{})

	_, _, err := svc.ActiveCourses(context.Background(), "wrong")

	require.ErrorIs(t, err, appErrors.ErrInvalidAPIKey)
	assert.Zero(t, courses.calls)
}

func TestAllOperationsRejectBadKey(t *testing.T) {
	results := &fakeResultRepo{}
	participants := &fakeParticipantRepo{}
	svc := newReportService(&fakeCourseRepo{}, participants, results, &fakeScores{})

	_, _, err := svc.Participants(context.Background(), "", 0)
	assert.ErrorIs(t, err, appErrors.ErrInvalidAPIKey)

	_, _, err = svc.CourseResults(context.Background(), "nope", 0, 0)
	assert.ErrorIs(t, err, appErrors.ErrInvalidAPIKey)

	_, _, err = svc.AllCourseResults(context.Background(), "nope", 0, "")
	assert.ErrorIs(t, err, appErrors.ErrInvalidAPIKey)

	assert.Zero(t, participants.calls)
	assert.Zero(t, results.calls)
}

func TestActiveCoursesStripsSummaryMarkup(t *testing.T) {
	courses := &fakeCourseRepo{courses: []models.CourseRecord{
		{ID: 2, Fullname: "Go Basics", Summary: "<p>Learn <b>Go</b></p>"},
	}}
	svc := newReportService(courses, &fakeParticipantRepo{}, &fakeResultRepo{}, &fakeScores{})

	out, cacheHit, err := svc.ActiveCourses(context.Background(), "k")

	require.NoError(t, err)
	assert.False(t, cacheHit)
	require.Len(t, out, 1)
	assert.Equal(t, "Learn Go", out[0].Summary)
}

func TestParticipantsPassesCourseFilter(t *testing.T) {
	participants := &fakeParticipantRepo{}
	svc := newReportService(&fakeCourseRepo{}, participants, &fakeResultRepo{}, &fakeScores{})

	_, _, err := svc.Participants(context.Background(), "k", 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), participants.lastFilter.CourseID)
}

func TestCourseResultsBuildsRecords(t *testing.T) {
	results := &fakeResultRepo{rows: []models.ResultBaseRow{
		{
			UserID: 7, Email: "a@b.c", FirstName: "Ada", LastName: "L",
			CompanyName: "Acme", CourseID: 3, CourseShortname: "GO", CourseName: "Go",
			CompletionDate: 1700000000, FinalGrade: 87.456,
		},
		{
			UserID: 8, CourseID: 3, FinalGrade: 0, CompletionDate: 0,
		},
	}}
	scores := &fakeScores{pre: 60.5, post: 88.25}
	svc := newReportService(&fakeCourseRepo{}, &fakeParticipantRepo{}, results, scores)

	out, _, err := svc.CourseResults(context.Background(), "k", 3, 0)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 87.46, out[0].FinalGrade)
	assert.Equal(t, 60.5, out[0].PretestScore)
	assert.Equal(t, 88.25, out[0].PosttestScore)
	assert.Equal(t, 1, out[0].IsCompleted)
	assert.Equal(t, int64(1700000000), out[0].CompletionDate)

	assert.Equal(t, 0.0, out[1].FinalGrade)
	assert.Equal(t, 0, out[1].IsCompleted)
	assert.Equal(t, int64(0), out[1].CompletionDate)
}

func TestCourseResultsPropagatesQuizLookupError(t *testing.T) {
	results := &fakeResultRepo{rows: []models.ResultBaseRow{{UserID: 1, CourseID: 2}}}
	svc := newReportService(&fakeCourseRepo{}, &fakeParticipantRepo{}, results, &fakeScores{err: errors.New("db down")})

	_, _, err := svc.CourseResults(context.Background(), "k", 0, 0)

	assert.Error(t, err)
}

func TestAllCourseResultsEmbedsQuestionnaireBlock(t *testing.T) {
	results := &fakeResultRepo{rows: []models.ResultBaseRow{
		{UserID: 7, CompanyName: "Acme", CourseID: 3, FinalGrade: 87.456},
	}}
	scores := &fakeScores{survey: models.QuestionnaireScores{
		Available: true, Materi: 5, Trainer: 4, Tempat: 3, Total: 4,
	}}
	svc := newReportService(&fakeCourseRepo{}, &fakeParticipantRepo{}, results, scores)

	out, _, err := svc.AllCourseResults(context.Background(), "k", 3, "Acme")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Acme", results.lastFilter.CompanyName)
	assert.Equal(t, "Acme", out[0].CompanyName)
	assert.Equal(t, 87.46, out[0].FinalGrade)
	assert.Equal(t, 1, out[0].QuestionnaireAvailable)
	assert.Equal(t, 5.0, out[0].ScoreMateri)
	assert.Equal(t, 4.0, out[0].ScoreTrainer)
	assert.Equal(t, 3.0, out[0].ScoreTempat)
	assert.Equal(t, 4.0, out[0].ScoreTotal)
}

func TestAllCourseResultsUnavailableSurveyYieldsZeroFlag(t *testing.T) {
	results := &fakeResultRepo{rows: []models.ResultBaseRow{{UserID: 7, CourseID: 3}}}
	svc := newReportService(&fakeCourseRepo{}, &fakeParticipantRepo{}, results, &fakeScores{})

	out, _, err := svc.AllCourseResults(context.Background(), "k", 0, "")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].QuestionnaireAvailable)
}
