package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-hris-api/internal/models"
)

// ResultRepository reads enrollment result rows: completion state and
// the final course grade per (user, course).
type ResultRepository struct {
	db           *sqlx.DB
	siteCourseID int64
	branchField  string
}

// NewResultRepository creates a new result repository.
func NewResultRepository(db *sqlx.DB, siteCourseID int64, branchField string) *ResultRepository {
	return &ResultRepository{db: db, siteCourseID: siteCourseID, branchField: branchField}
}

// ListBase returns one row per (user, course) enrollment with the final
// course grade (0 when absent) and completion timestamp (0 when absent).
// Every enrolled user is included regardless of course role. Filters
// narrow by course, user and exact company match when set.
func (r *ResultRepository) ListBase(ctx context.Context, filter models.ResultFilter) ([]models.ResultBaseRow, error) {
	query := `SELECT u.id AS user_id, u.email, u.firstname, u.lastname,
            COALESCE(uid.data, '') AS company_name,
            c.id AS course_id, c.shortname AS course_shortname, c.fullname AS course_name,
            COALESCE(cc.timecompleted, 0) AS completion_date,
            COALESCE(gg.finalgrade, 0) AS final_grade
        FROM mdl_user u
        JOIN mdl_user_enrolments ue ON u.id = ue.userid
        JOIN mdl_enrol e ON ue.enrolid = e.id
        JOIN mdl_course c ON e.courseid = c.id
        LEFT JOIN mdl_course_completions cc ON u.id = cc.userid AND c.id = cc.course
        LEFT JOIN mdl_grade_items gi ON c.id = gi.courseid AND gi.itemtype = 'course'
        LEFT JOIN mdl_grade_grades gg ON u.id = gg.userid AND gi.id = gg.itemid
        LEFT JOIN mdl_user_info_field uif ON uif.shortname = $2
        LEFT JOIN mdl_user_info_data uid ON u.id = uid.userid AND uid.fieldid = uif.id
        WHERE u.deleted = 0 AND u.confirmed = 1
        AND c.id != $1 AND c.visible = 1`
	args := []interface{}{r.siteCourseID, r.branchField}
	if filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		query += fmt.Sprintf(" AND c.id = $%d", len(args))
	}
	if filter.UserID > 0 {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND u.id = $%d", len(args))
	}
	if filter.CompanyName != "" {
		args = append(args, filter.CompanyName)
		query += fmt.Sprintf(" AND uid.data = $%d", len(args))
	}
	query += ` GROUP BY u.id, u.email, u.firstname, u.lastname, uid.data, c.id, c.shortname, c.fullname, cc.timecompleted, gg.finalgrade
        ORDER BY c.fullname, u.lastname, u.firstname`

	var rows []models.ResultBaseRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list result rows: %w", err)
	}
	return rows, nil
}
