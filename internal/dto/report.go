package dto

// CoursesQuery binds the active-courses request parameters.
type CoursesQuery struct {
	APIKey string `form:"apikey" binding:"required"`
}

// ParticipantsQuery binds the participants request parameters.
// CourseID 0 means every visible non-site course.
type ParticipantsQuery struct {
	APIKey   string `form:"apikey" binding:"required"`
	CourseID int64  `form:"courseid" binding:"omitempty,min=0"`
}

// ResultsQuery binds the course-results request parameters.
type ResultsQuery struct {
	APIKey   string `form:"apikey" binding:"required"`
	CourseID int64  `form:"courseid" binding:"omitempty,min=0"`
	UserID   int64  `form:"userid" binding:"omitempty,min=0"`
}

// AllResultsQuery binds the aggregated-results request parameters.
type AllResultsQuery struct {
	APIKey      string `form:"apikey" binding:"required"`
	CourseID    int64  `form:"courseid" binding:"omitempty,min=0"`
	CompanyName string `form:"company_name"`
}

// ExportQuery binds the results-export request parameters.
type ExportQuery struct {
	APIKey      string `form:"apikey" binding:"required"`
	CourseID    int64  `form:"courseid" binding:"omitempty,min=0"`
	CompanyName string `form:"company_name"`
	Format      string `form:"format" binding:"omitempty,oneof=csv pdf"`
}
