package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-hris-api/internal/models"
)

// CourseRepository reads course rows from the LMS schema.
type CourseRepository struct {
	db           *sqlx.DB
	siteCourseID int64
}

// NewCourseRepository creates a new course repository. siteCourseID is
// the platform root course, excluded from every listing.
func NewCourseRepository(db *sqlx.DB, siteCourseID int64) *CourseRepository {
	return &CourseRepository{db: db, siteCourseID: siteCourseID}
}

// ListActive returns visible non-site courses ordered by full name.
func (r *CourseRepository) ListActive(ctx context.Context) ([]models.CourseRecord, error) {
	const query = `SELECT c.id, c.shortname, c.fullname, c.summary, c.startdate, c.enddate, c.visible
        FROM mdl_course c
        WHERE c.id != $1 AND c.visible = 1
        ORDER BY c.fullname`
	var courses []models.CourseRecord
	if err := r.db.SelectContext(ctx, &courses, query, r.siteCourseID); err != nil {
		return nil, fmt.Errorf("list active courses: %w", err)
	}
	return courses, nil
}
