package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-hris-api/internal/dto"
	"github.com/noah-isme/lms-hris-api/internal/models"
	appErrors "github.com/noah-isme/lms-hris-api/pkg/errors"
	"github.com/noah-isme/lms-hris-api/pkg/response"
)

type reportService interface {
	ActiveCourses(ctx context.Context, apikey string) ([]models.CourseRecord, bool, error)
	Participants(ctx context.Context, apikey string, courseID int64) ([]models.ParticipantRecord, bool, error)
	CourseResults(ctx context.Context, apikey string, courseID, userID int64) ([]models.CourseResultRecord, bool, error)
	AllCourseResults(ctx context.Context, apikey string, courseID int64, companyName string) ([]models.FullCourseResultRecord, bool, error)
}

type exportService interface {
	Render(ctx context.Context, apikey, format string, courseID int64, companyName string) ([]byte, string, error)
}

// ReportHandler exposes the HRIS reporting endpoints.
type ReportHandler struct {
	reports reportService
	exports exportService
}

// NewReportHandler constructs the report handler. exports may be nil
// when the export endpoint is disabled.
func NewReportHandler(reports reportService, exports exportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// Courses returns the active course catalogue.
func (h *ReportHandler) Courses(c *gin.Context) {
	var query dto.CoursesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "apikey parameter required"))
		return
	}
	start := time.Now()
	courses, cacheHit, err := h.reports.ActiveCourses(c.Request.Context(), query.APIKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, meta(cacheHit, start))
}

// Participants returns enrolled users, optionally narrowed to a course.
func (h *ReportHandler) Participants(c *gin.Context) {
	var query dto.ParticipantsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	start := time.Now()
	participants, cacheHit, err := h.reports.Participants(c.Request.Context(), query.APIKey, query.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participants, meta(cacheHit, start))
}

// Results returns per-user course outcomes with quiz scores.
func (h *ReportHandler) Results(c *gin.Context) {
	var query dto.ResultsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	start := time.Now()
	results, cacheHit, err := h.reports.CourseResults(c.Request.Context(), query.APIKey, query.CourseID, query.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, meta(cacheHit, start))
}

// AllResults returns course outcomes with questionnaire scores,
// optionally filtered by company.
func (h *ReportHandler) AllResults(c *gin.Context) {
	var query dto.AllResultsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	start := time.Now()
	results, cacheHit, err := h.reports.AllCourseResults(c.Request.Context(), query.APIKey, query.CourseID, query.CompanyName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, meta(cacheHit, start))
}

// Export streams the aggregated results as a CSV or PDF attachment.
func (h *ReportHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export disabled"))
		return
	}
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	payload, contentType, err := h.exports.Render(c.Request.Context(), query.APIKey, query.Format, query.CourseID, query.CompanyName)
	if err != nil {
		response.Error(c, err)
		return
	}
	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	filename := fmt.Sprintf("course_results_%s.%s", time.Now().UTC().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

func meta(cacheHit bool, start time.Time) map[string]interface{} {
	return map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
}
