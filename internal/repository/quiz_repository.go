package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// QuizRepository resolves graded quiz attempts by classification tag.
// Quizzes are tagged pre-test or post-test through a custom field on
// the course module; the tag value lives in the field data, not in a
// dedicated column.
type QuizRepository struct {
	db            *sqlx.DB
	quizTypeField string
}

// NewQuizRepository creates a new quiz repository. quizTypeField is the
// custom field shortname carrying the classification tag.
func NewQuizRepository(db *sqlx.DB, quizTypeField string) *QuizRepository {
	return &QuizRepository{db: db, quizTypeField: quizTypeField}
}

// MaxClassifiedGrade returns the highest final grade the user holds
// across every quiz in the course tagged with the given classification
// value. The boolean is false when no tagged quiz, grade item or grade
// row exists. More than one quiz may carry the same tag; the maximum
// wins, not the latest.
func (r *QuizRepository) MaxClassifiedGrade(ctx context.Context, userID, courseID int64, tag string) (float64, bool, error) {
	const query = `SELECT MAX(gg.finalgrade) AS score
        FROM mdl_course_modules cm
        JOIN mdl_modules m ON m.id = cm.module AND m.name = 'quiz'
        JOIN mdl_customfield_field cf ON cf.shortname = $4
        JOIN mdl_customfield_data cfd ON cfd.instanceid = cm.id AND cfd.fieldid = cf.id AND cfd.value = $3
        JOIN mdl_grade_items gi ON gi.iteminstance = cm.instance AND gi.itemmodule = 'quiz'
        LEFT JOIN mdl_grade_grades gg ON gg.itemid = gi.id AND gg.userid = $1
        WHERE cm.course = $2`
	var score sql.NullFloat64
	if err := r.db.GetContext(ctx, &score, query, userID, courseID, tag, r.quizTypeField); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("max classified grade: %w", err)
	}
	if !score.Valid {
		return 0, false, nil
	}
	return score.Float64, true, nil
}
