package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-hris-api/internal/models"
	appErrors "github.com/noah-isme/lms-hris-api/pkg/errors"
	"github.com/noah-isme/lms-hris-api/pkg/htmlutil"
	"github.com/noah-isme/lms-hris-api/pkg/round"
)

type courseReader interface {
	ListActive(ctx context.Context) ([]models.CourseRecord, error)
}

type participantReader interface {
	List(ctx context.Context, filter models.ParticipantFilter) ([]models.ParticipantRecord, error)
}

type resultReader interface {
	ListBase(ctx context.Context, filter models.ResultFilter) ([]models.ResultBaseRow, error)
}

type scoreAggregator interface {
	QuizScore(ctx context.Context, userID, courseID int64, kind QuizKind) (float64, error)
	QuestionnaireScores(ctx context.Context, userID, courseID int64) models.QuestionnaireScores
}

// ReportService assembles the read-only reporting payloads served to
// the HR system. Every operation validates the caller's API key before
// touching the data store. The boolean result indicates whether the
// payload came from cache.
type ReportService struct {
	gate         *AccessService
	courses      courseReader
	participants participantReader
	results      resultReader
	scores       scoreAggregator
	cache        *CacheService
	metrics      *MetricsService
	logger       *zap.Logger
}

// NewReportService constructs a report service.
func NewReportService(gate *AccessService, courses courseReader, participants participantReader, results resultReader, scores scoreAggregator, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		gate:         gate,
		courses:      courses,
		participants: participants,
		results:      results,
		scores:       scores,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

// ActiveCourses lists visible non-site courses with HTML-stripped
// summaries, ordered by full name.
func (s *ReportService) ActiveCourses(ctx context.Context, apikey string) ([]models.CourseRecord, bool, error) {
	if err := s.authorize(apikey); err != nil {
		return nil, false, err
	}

	cacheKey := reportCacheKey("courses")
	var cached []models.CourseRecord
	if hit, err := s.cacheGet(ctx, cacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	start := time.Now()
	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	s.observe("active_courses", start)

	for i := range courses {
		courses[i].Summary = htmlutil.Strip(courses[i].Summary)
	}

	s.cacheSet(ctx, cacheKey, courses)
	return courses, false, nil
}

// Participants lists enrolled users across visible courses, one row per
// (user, course) pair.
func (s *ReportService) Participants(ctx context.Context, apikey string, courseID int64) ([]models.ParticipantRecord, bool, error) {
	if err := s.authorize(apikey); err != nil {
		return nil, false, err
	}

	cacheKey := reportCacheKey("participants", fmt.Sprintf("%d", courseID))
	var cached []models.ParticipantRecord
	if hit, err := s.cacheGet(ctx, cacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	start := time.Now()
	participants, err := s.participants.List(ctx, models.ParticipantFilter{CourseID: courseID})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list participants")
	}
	s.observe("participants", start)

	s.cacheSet(ctx, cacheKey, participants)
	return participants, false, nil
}

// CourseResults lists per-user course outcomes: final grade, pre/post
// test scores and completion state.
func (s *ReportService) CourseResults(ctx context.Context, apikey string, courseID, userID int64) ([]models.CourseResultRecord, bool, error) {
	if err := s.authorize(apikey); err != nil {
		return nil, false, err
	}

	cacheKey := reportCacheKey("results", fmt.Sprintf("%d", courseID), fmt.Sprintf("%d", userID))
	var cached []models.CourseResultRecord
	if hit, err := s.cacheGet(ctx, cacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	start := time.Now()
	rows, err := s.results.ListBase(ctx, models.ResultFilter{CourseID: courseID, UserID: userID})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course results")
	}
	s.observe("course_results", start)

	records := make([]models.CourseResultRecord, 0, len(rows))
	for _, row := range rows {
		record, err := s.buildResult(ctx, row)
		if err != nil {
			return nil, false, err
		}
		records = append(records, record)
	}

	s.cacheSet(ctx, cacheKey, records)
	return records, false, nil
}

// AllCourseResults extends CourseResults with an exact company filter
// and the questionnaire score block per record.
func (s *ReportService) AllCourseResults(ctx context.Context, apikey string, courseID int64, companyName string) ([]models.FullCourseResultRecord, bool, error) {
	if err := s.authorize(apikey); err != nil {
		return nil, false, err
	}

	cacheKey := reportCacheKey("results_all", fmt.Sprintf("%d", courseID), companyName)
	var cached []models.FullCourseResultRecord
	if hit, err := s.cacheGet(ctx, cacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	start := time.Now()
	rows, err := s.results.ListBase(ctx, models.ResultFilter{CourseID: courseID, CompanyName: companyName})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course results")
	}
	s.observe("all_course_results", start)

	records := make([]models.FullCourseResultRecord, 0, len(rows))
	for _, row := range rows {
		base, err := s.buildResult(ctx, row)
		if err != nil {
			return nil, false, err
		}
		survey := s.scores.QuestionnaireScores(ctx, row.UserID, row.CourseID)
		record := models.FullCourseResultRecord{
			CourseResultRecord: base,
			ScoreMateri:        survey.Materi,
			ScoreTrainer:       survey.Trainer,
			ScoreTempat:        survey.Tempat,
			ScoreTotal:         survey.Total,
		}
		if survey.Available {
			record.QuestionnaireAvailable = 1
		}
		records = append(records, record)
	}

	s.cacheSet(ctx, cacheKey, records)
	return records, false, nil
}

func (s *ReportService) buildResult(ctx context.Context, row models.ResultBaseRow) (models.CourseResultRecord, error) {
	pretest, err := s.scores.QuizScore(ctx, row.UserID, row.CourseID, QuizPre)
	if err != nil {
		return models.CourseResultRecord{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve pre-test score")
	}
	posttest, err := s.scores.QuizScore(ctx, row.UserID, row.CourseID, QuizPost)
	if err != nil {
		return models.CourseResultRecord{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve post-test score")
	}

	record := models.CourseResultRecord{
		UserID:          row.UserID,
		Email:           row.Email,
		FirstName:       row.FirstName,
		LastName:        row.LastName,
		CompanyName:     row.CompanyName,
		CourseID:        row.CourseID,
		CourseShortname: row.CourseShortname,
		CourseName:      row.CourseName,
		FinalGrade:      round.Two(row.FinalGrade),
		PretestScore:    pretest,
		PosttestScore:   posttest,
		CompletionDate:  row.CompletionDate,
	}
	if row.CompletionDate > 0 {
		record.IsCompleted = 1
	}
	return record, nil
}

func (s *ReportService) authorize(apikey string) error {
	if s.gate != nil && s.gate.Validate(apikey) {
		return nil
	}
	if s.metrics != nil {
		s.metrics.RecordAuthRejection()
	}
	return appErrors.ErrInvalidAPIKey
}

func (s *ReportService) cacheGet(ctx context.Context, key string, dest interface{}) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache get", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return hit, nil
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, 0); err != nil {
		s.logger.Warn("report cache set", zap.String("key", key), zap.Error(err))
	}
}

func (s *ReportService) observe(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func reportCacheKey(parts ...string) string {
	return "hris:" + strings.Join(parts, ":")
}
