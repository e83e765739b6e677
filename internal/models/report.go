package models

// CourseRecord is one active course row as delivered to the HR system.
// Summary is plain text; markup is stripped before the record leaves
// the service.
type CourseRecord struct {
	ID        int64  `db:"id" json:"id"`
	Shortname string `db:"shortname" json:"shortname"`
	Fullname  string `db:"fullname" json:"fullname"`
	Summary   string `db:"summary" json:"summary"`
	StartDate int64  `db:"startdate" json:"startdate"`
	EndDate   int64  `db:"enddate" json:"enddate"`
	Visible   int    `db:"visible" json:"visible"`
}

// ParticipantRecord flattens user × course × enrollment. One row per
// (user, course) pair regardless of how many enrollment methods link
// them. CompanyName is "" when the user has no branch attribute.
type ParticipantRecord struct {
	UserID          int64  `db:"user_id" json:"user_id"`
	Email           string `db:"email" json:"email"`
	FirstName       string `db:"firstname" json:"firstname"`
	LastName        string `db:"lastname" json:"lastname"`
	CompanyName     string `db:"company_name" json:"company_name"`
	CourseID        int64  `db:"course_id" json:"course_id"`
	CourseShortname string `db:"course_shortname" json:"course_shortname"`
	CourseName      string `db:"course_name" json:"course_name"`
	EnrollmentDate  int64  `db:"enrollment_date" json:"enrollment_date"`
}

// ResultBaseRow is the repository-level row behind course results:
// enrollment joined with completion and the final course grade, before
// quiz and questionnaire scores are attached.
type ResultBaseRow struct {
	UserID          int64   `db:"user_id"`
	Email           string  `db:"email"`
	FirstName       string  `db:"firstname"`
	LastName        string  `db:"lastname"`
	CompanyName     string  `db:"company_name"`
	CourseID        int64   `db:"course_id"`
	CourseShortname string  `db:"course_shortname"`
	CourseName      string  `db:"course_name"`
	CompletionDate  int64   `db:"completion_date"`
	FinalGrade      float64 `db:"final_grade"`
}

// CourseResultRecord is one per-user-per-course result with quiz scores.
// FinalGrade is 0 when no grade exists; CompletionDate is 0 and
// IsCompleted 0 when the course was never completed.
type CourseResultRecord struct {
	UserID          int64   `json:"user_id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"firstname"`
	LastName        string  `json:"lastname"`
	CompanyName     string  `json:"company_name"`
	CourseID        int64   `json:"course_id"`
	CourseShortname string  `json:"course_shortname"`
	CourseName      string  `json:"course_name"`
	FinalGrade      float64 `json:"final_grade"`
	PretestScore    float64 `json:"pretest_score"`
	PosttestScore   float64 `json:"posttest_score"`
	CompletionDate  int64   `json:"completion_date"`
	IsCompleted     int     `json:"is_completed"`
}

// FullCourseResultRecord extends CourseResultRecord with the
// questionnaire score block.
type FullCourseResultRecord struct {
	CourseResultRecord
	QuestionnaireAvailable int     `json:"questionnaire_available"`
	ScoreMateri            float64 `json:"score_materi"`
	ScoreTrainer           float64 `json:"score_trainer"`
	ScoreTempat            float64 `json:"score_tempat"`
	ScoreTotal             float64 `json:"score_total"`
}

// QuestionnaireScores is the aggregator output for one (user, course)
// pair. The zero value is the fail-safe default returned whenever the
// survey data is absent or unreadable.
type QuestionnaireScores struct {
	Available bool
	Materi    float64
	Trainer   float64
	Tempat    float64
	Total     float64
}

// ParticipantFilter narrows participant listings. Zero means all
// courses.
type ParticipantFilter struct {
	CourseID int64
}

// ResultFilter narrows result listings. Zero/empty fields are ignored.
type ResultFilter struct {
	CourseID    int64
	UserID      int64
	CompanyName string
}
