package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-hris-api/internal/models"
	appErrors "github.com/noah-isme/lms-hris-api/pkg/errors"
	"github.com/noah-isme/lms-hris-api/pkg/response"
)

type fakeReportService struct {
	courses      []models.CourseRecord
	participants []models.ParticipantRecord
	results      []models.CourseResultRecord
	fullResults  []models.FullCourseResultRecord
	err          error

	lastAPIKey   string
	lastCourseID int64
	lastUserID   int64
	lastCompany  string
}

func (f *fakeReportService) ActiveCourses(_ context.Context, apikey string) ([]models.CourseRecord, bool, error) {
	f.lastAPIKey = apikey
	return f.courses, false, f.err
}

func (f *fakeReportService) Participants(_ context.Context, apikey string, courseID int64) ([]models.ParticipantRecord, bool, error) {
	f.lastAPIKey = apikey
	f.lastCourseID = courseID
	return f.participants, false, f.err
}

func (f *fakeReportService) CourseResults(_ context.Context, apikey string, courseID, userID int64) ([]models.CourseResultRecord, bool, error) {
	f.lastAPIKey = apikey
	f.lastCourseID = courseID
	f.lastUserID = userID
	return f.results, true, f.err
}

func (f *fakeReportService) AllCourseResults(_ context.Context, apikey string, courseID int64, companyName string) ([]models.FullCourseResultRecord, bool, error) {
	f.lastAPIKey = apikey
	f.lastCourseID = courseID
	f.lastCompany = companyName
	return f.fullResults, false, f.err
}

type fakeExportService struct {
	payload     []byte
	contentType string
	err         error
	lastFormat  string
}

func (f *fakeExportService) Render(_ context.Context, _, format string, _ int64, _ string) ([]byte, string, error) {
	f.lastFormat = format
	if f.err != nil {
		return nil, "", f.err
	}
	return f.payload, f.contentType, nil
}

func setupRouter(reports *fakeReportService, exports *fakeExportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var h *ReportHandler
	if exports != nil {
		h = NewReportHandler(reports, exports)
	} else {
		h = NewReportHandler(reports, nil)
	}
	router := gin.New()
	group := router.Group("/api/v1/hris")
	group.GET("/courses", h.Courses)
	group.GET("/participants", h.Participants)
	group.GET("/results", h.Results)
	group.GET("/results/all", h.AllResults)
	group.GET("/results/export", h.Export)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestCoursesRequiresAPIKey(t *testing.T) {
	router := setupRouter(&fakeReportService{}, nil)

	w := doRequest(t, router, "/api/v1/hris/courses")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestCoursesReturnsData(t *testing.T) {
	reports := &fakeReportService{courses: []models.CourseRecord{{ID: 2, Fullname: "Go Basics"}}}
	router := setupRouter(reports, nil)

	w := doRequest(t, router, "/api/v1/hris/courses?apikey=secret")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", reports.lastAPIKey)
	envelope := decodeEnvelope(t, w)
	assert.Nil(t, envelope.Error)
	assert.NotNil(t, envelope.Data)
	assert.Contains(t, envelope.Meta, "cache_hit")
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCoursesInvalidKeyYields401(t *testing.T) {
	router := setupRouter(&fakeReportService{err: appErrors.ErrInvalidAPIKey}, nil)

	w := doRequest(t, router, "/api/v1/hris/courses?apikey=wrong")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInvalidAPIKey.Code, envelope.Error.Code)
}

func TestParticipantsPassesFilters(t *testing.T) {
	reports := &fakeReportService{}
	router := setupRouter(reports, nil)

	w := doRequest(t, router, "/api/v1/hris/participants?apikey=secret&courseid=42")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), reports.lastCourseID)
}

func TestResultsPassesFilters(t *testing.T) {
	reports := &fakeReportService{}
	router := setupRouter(reports, nil)

	w := doRequest(t, router, "/api/v1/hris/results?apikey=secret&courseid=3&userid=7")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), reports.lastCourseID)
	assert.Equal(t, int64(7), reports.lastUserID)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestAllResultsPassesCompanyFilter(t *testing.T) {
	reports := &fakeReportService{}
	router := setupRouter(reports, nil)

	w := doRequest(t, router, "/api/v1/hris/results/all?apikey=secret&company_name=Acme")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme", reports.lastCompany)
}

func TestExportStreamsAttachment(t *testing.T) {
	exports := &fakeExportService{payload: []byte("course_id\n3\n"), contentType: "text/csv"}
	router := setupRouter(&fakeReportService{}, exports)

	w := doRequest(t, router, "/api/v1/hris/results/export?apikey=secret&format=csv")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exports.lastFormat)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, "course_id\n3\n", w.Body.String())
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	router := setupRouter(&fakeReportService{}, &fakeExportService{})

	w := doRequest(t, router, "/api/v1/hris/results/export?apikey=secret&format=xlsx")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportDisabledYields404(t *testing.T) {
	router := setupRouter(&fakeReportService{}, nil)

	w := doRequest(t, router, "/api/v1/hris/results/export?apikey=secret")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
