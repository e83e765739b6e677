package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-hris-api/internal/models"
)

// ParticipantRepository reads enrollment rosters from the LMS schema.
type ParticipantRepository struct {
	db           *sqlx.DB
	siteCourseID int64
	branchField  string
}

// NewParticipantRepository creates a new participant repository.
// branchField is the profile field shortname holding the company
// affiliation.
func NewParticipantRepository(db *sqlx.DB, siteCourseID int64, branchField string) *ParticipantRepository {
	return &ParticipantRepository{db: db, siteCourseID: siteCourseID, branchField: branchField}
}

// List returns confirmed, non-deleted users enrolled in visible
// non-site courses. A user enrolled in the same course through several
// enrollment methods yields a single row; the earliest enrollment
// timestamp wins.
func (r *ParticipantRepository) List(ctx context.Context, filter models.ParticipantFilter) ([]models.ParticipantRecord, error) {
	query := `SELECT u.id AS user_id, u.email, u.firstname, u.lastname,
            COALESCE(uid.data, '') AS company_name,
            c.id AS course_id, c.shortname AS course_shortname, c.fullname AS course_name,
            MIN(ue.timecreated) AS enrollment_date
        FROM mdl_user u
        JOIN mdl_user_enrolments ue ON u.id = ue.userid
        JOIN mdl_enrol e ON ue.enrolid = e.id
        JOIN mdl_course c ON e.courseid = c.id
        LEFT JOIN mdl_user_info_field uif ON uif.shortname = $2
        LEFT JOIN mdl_user_info_data uid ON u.id = uid.userid AND uid.fieldid = uif.id
        WHERE u.deleted = 0 AND u.confirmed = 1
        AND c.id != $1 AND c.visible = 1`
	args := []interface{}{r.siteCourseID, r.branchField}
	if filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		query += fmt.Sprintf(" AND c.id = $%d", len(args))
	}
	query += ` GROUP BY u.id, u.email, u.firstname, u.lastname, uid.data, c.id, c.shortname, c.fullname
        ORDER BY c.fullname, u.lastname, u.firstname`

	var participants []models.ParticipantRecord
	if err := r.db.SelectContext(ctx, &participants, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}
