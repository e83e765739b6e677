package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-hris-api/internal/models"
	"github.com/noah-isme/lms-hris-api/pkg/round"
)

// QuizKind selects which classified quiz a score lookup targets.
type QuizKind string

const (
	QuizPre  QuizKind = "pre"
	QuizPost QuizKind = "post"
)

// Classification tag values stored in the quiz custom field.
const (
	pretestTag  = "2"
	posttestTag = "3"
)

// Number of survey choices required for the materi/trainer/tempat
// breakdown. The three sub-scores average positions 0-2, 3-5 and 6-8.
const breakdownChoiceCount = 9

type quizGradeReader interface {
	MaxClassifiedGrade(ctx context.Context, userID, courseID int64, tag string) (float64, bool, error)
}

type questionnaireReader interface {
	Instrument(ctx context.Context, courseID int64) (int64, bool, error)
	RateQuestion(ctx context.Context, instrumentID int64) (int64, bool, error)
	ChoiceCount(ctx context.Context, questionID int64) (int, error)
	Response(ctx context.Context, instrumentID, userID int64) (int64, bool, error)
	RankValues(ctx context.Context, responseID, questionID int64) ([]float64, error)
}

// ScoreService computes the derived per-user, per-course metrics: the
// pre/post-test quiz scores and the questionnaire sub-scores.
type ScoreService struct {
	quizzes quizGradeReader
	surveys questionnaireReader
	logger  *zap.Logger
}

// NewScoreService constructs a score service.
func NewScoreService(quizzes quizGradeReader, surveys questionnaireReader, logger *zap.Logger) *ScoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{quizzes: quizzes, surveys: surveys, logger: logger}
}

// QuizScore returns the user's best grade among the course quizzes
// tagged with the requested classification, rounded to two decimals.
// 0.00 when no tagged quiz or no grade exists. Pre and post lookups are
// independent: each resolves only its own tag value.
func (s *ScoreService) QuizScore(ctx context.Context, userID, courseID int64, kind QuizKind) (float64, error) {
	tag := pretestTag
	if kind == QuizPost {
		tag = posttestTag
	}
	score, found, err := s.quizzes.MaxClassifiedGrade(ctx, userID, courseID, tag)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return round.Two(score), nil
}

// QuestionnaireScores aggregates the user's survey response for the
// course into a total and, when the instrument carries exactly nine
// choices, the materi/trainer/tempat sub-scores.
//
// Any repository failure along the way yields the zero default rather
// than an error: a broken or half-edited survey must never take down
// the course-results listing it is embedded in. This is the only place
// data access errors are swallowed.
func (s *ScoreService) QuestionnaireScores(ctx context.Context, userID, courseID int64) models.QuestionnaireScores {
	var def models.QuestionnaireScores

	instrumentID, found, err := s.surveys.Instrument(ctx, courseID)
	if err != nil {
		s.warn("questionnaire instrument lookup failed", userID, courseID, err)
		return def
	}
	if !found {
		return def
	}

	questionID, found, err := s.surveys.RateQuestion(ctx, instrumentID)
	if err != nil {
		s.warn("rate question lookup failed", userID, courseID, err)
		return def
	}
	if !found {
		return def
	}

	choiceCount, err := s.surveys.ChoiceCount(ctx, questionID)
	if err != nil {
		s.warn("choice count failed", userID, courseID, err)
		return def
	}

	responseID, found, err := s.surveys.Response(ctx, instrumentID, userID)
	if err != nil {
		s.warn("response lookup failed", userID, courseID, err)
		return def
	}
	if !found {
		return def
	}

	values, err := s.surveys.RankValues(ctx, responseID, questionID)
	if err != nil {
		s.warn("rank values failed", userID, courseID, err)
		return def
	}
	if len(values) == 0 {
		return def
	}

	// Total covers whatever was recorded, even when it disagrees with
	// the configured choice count.
	var sum float64
	for _, v := range values {
		sum += v
	}
	total := round.Two(sum / float64(len(values)))

	// An instrument edited after responses were collected leaves the
	// recorded values out of step with the configured choices. The
	// positional buckets would be meaningless, so only the total
	// survives.
	if len(values) != choiceCount {
		return models.QuestionnaireScores{Available: total > 0, Total: total}
	}

	if choiceCount == breakdownChoiceCount {
		materi := round.Two((values[0] + values[1] + values[2]) / 3)
		trainer := round.Two((values[3] + values[4] + values[5]) / 3)
		tempat := round.Two((values[6] + values[7] + values[8]) / 3)
		return models.QuestionnaireScores{
			Available: materi > 0 || trainer > 0 || tempat > 0 || total > 0,
			Materi:    materi,
			Trainer:   trainer,
			Tempat:    tempat,
			Total:     total,
		}
	}

	return models.QuestionnaireScores{Available: total > 0, Total: total}
}

func (s *ScoreService) warn(msg string, userID, courseID int64, err error) {
	s.logger.Warn(msg,
		zap.Int64("user_id", userID),
		zap.Int64("course_id", courseID),
		zap.Error(err),
	)
}
