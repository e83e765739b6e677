package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Question type discriminator for rating questions in the survey schema.
const rateQuestionType = 8

// QuestionnaireRepository reads survey instruments, questions and
// per-user responses from the LMS schema. Each lookup distinguishes
// "not found" (false, nil error) from a data access failure so the
// aggregator can apply its fail-safe policy explicitly.
type QuestionnaireRepository struct {
	db *sqlx.DB
}

// NewQuestionnaireRepository creates a new questionnaire repository.
func NewQuestionnaireRepository(db *sqlx.DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{db: db}
}

// Instrument returns the id of the visible questionnaire instrument in
// the course, if any.
func (r *QuestionnaireRepository) Instrument(ctx context.Context, courseID int64) (int64, bool, error) {
	const query = `SELECT q.id
        FROM mdl_course_modules cm
        JOIN mdl_modules m ON m.id = cm.module AND m.name = 'questionnaire'
        JOIN mdl_questionnaire q ON q.id = cm.instance
        WHERE cm.course = $1 AND cm.visible = 1`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find questionnaire: %w", err)
	}
	return id, true, nil
}

// RateQuestion returns the id of the rating-type question within the
// instrument, if any.
func (r *QuestionnaireRepository) RateQuestion(ctx context.Context, instrumentID int64) (int64, bool, error) {
	const query = `SELECT id FROM mdl_questionnaire_question
        WHERE surveyid = $1 AND type_id = $2`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, instrumentID, rateQuestionType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find rate question: %w", err)
	}
	return id, true, nil
}

// ChoiceCount returns the number of configured choices on the question.
func (r *QuestionnaireRepository) ChoiceCount(ctx context.Context, questionID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM mdl_questionnaire_quest_choice WHERE question_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, questionID); err != nil {
		return 0, fmt.Errorf("count choices: %w", err)
	}
	return count, nil
}

// Response returns the id of the user's response record for the
// instrument, if any.
func (r *QuestionnaireRepository) Response(ctx context.Context, instrumentID, userID int64) (int64, bool, error) {
	const query = `SELECT id FROM mdl_questionnaire_response
        WHERE questionnaireid = $1 AND userid = $2`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, instrumentID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find response: %w", err)
	}
	return id, true, nil
}

// RankValues returns the per-choice rank values recorded for the
// response, ordered by choice id ascending. Positional slicing
// downstream depends on that ordering.
func (r *QuestionnaireRepository) RankValues(ctx context.Context, responseID, questionID int64) ([]float64, error) {
	const query = `SELECT qrr.rankvalue
        FROM mdl_questionnaire_response_rank qrr
        JOIN mdl_questionnaire_quest_choice qqc ON qqc.id = qrr.choice_id
        WHERE qrr.response_id = $1 AND qrr.question_id = $2
        ORDER BY qqc.id ASC`
	var values []float64
	if err := r.db.SelectContext(ctx, &values, query, responseID, questionID); err != nil {
		return nil, fmt.Errorf("list rank values: %w", err)
	}
	return values, nil
}
