package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/lms-hris-api/internal/models"
	appErrors "github.com/noah-isme/lms-hris-api/pkg/errors"
	"github.com/noah-isme/lms-hris-api/pkg/export"
)

// Export formats supported by the results export endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var exportHeaders = []string{
	"course_id", "course_name", "course_shortname",
	"user_id", "firstname", "lastname", "email", "company_name",
	"final_grade", "pretest_score", "posttest_score",
	"completion_date", "is_completed",
	"questionnaire_available", "score_materi", "score_trainer", "score_tempat", "score_total",
}

type fullResultsReader interface {
	AllCourseResults(ctx context.Context, apikey string, courseID int64, companyName string) ([]models.FullCourseResultRecord, bool, error)
}

// ExportService renders the aggregated course results as downloadable
// files. Authorization is delegated to the underlying report service,
// so the gate still runs before any query.
type ExportService struct {
	reports   fullResultsReader
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
}

type exportRequest struct {
	Format   string `validate:"omitempty,oneof=csv pdf"`
	CourseID int64  `validate:"min=0"`
}

// NewExportService constructs an export service.
func NewExportService(reports fullResultsReader, csv *export.CSVExporter, pdf *export.PDFExporter, validate *validator.Validate) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	return &ExportService{reports: reports, csv: csv, pdf: pdf, validator: validate}
}

// Render produces the export payload and its content type.
func (s *ExportService) Render(ctx context.Context, apikey, format string, courseID int64, companyName string) ([]byte, string, error) {
	if err := s.validator.Struct(exportRequest{Format: format, CourseID: courseID}); err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	records, _, err := s.reports.AllCourseResults(ctx, apikey, courseID, companyName)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(records))}
	for _, r := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"course_id":               strconv.FormatInt(r.CourseID, 10),
			"course_name":             r.CourseName,
			"course_shortname":        r.CourseShortname,
			"user_id":                 strconv.FormatInt(r.UserID, 10),
			"firstname":               r.FirstName,
			"lastname":                r.LastName,
			"email":                   r.Email,
			"company_name":            r.CompanyName,
			"final_grade":             formatScore(r.FinalGrade),
			"pretest_score":           formatScore(r.PretestScore),
			"posttest_score":          formatScore(r.PosttestScore),
			"completion_date":         strconv.FormatInt(r.CompletionDate, 10),
			"is_completed":            strconv.Itoa(r.IsCompleted),
			"questionnaire_available": strconv.Itoa(r.QuestionnaireAvailable),
			"score_materi":            formatScore(r.ScoreMateri),
			"score_trainer":           formatScore(r.ScoreTrainer),
			"score_tempat":            formatScore(r.ScoreTempat),
			"score_total":             formatScore(r.ScoreTotal),
		})
	}

	if format == FormatPDF {
		payload, err := s.pdf.Render(dataset, "course results")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	}
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return payload, "text/csv", nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
