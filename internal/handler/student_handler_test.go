package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type stubStudentRepo struct {
	students      []models.Student
	statusUpdates map[int64]string
}

func (s *stubStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.Student, error) {
	if !filter.HighRisk {
		return s.students, nil
	}
	out := []models.Student{}
	for _, st := range s.students {
		if st.DropoutRisk >= models.HighRiskThreshold {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *stubStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for i := range s.students {
		if s.students[i].ID == id {
			return &s.students[i], nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (s *stubStudentRepo) Create(_ context.Context, st *models.Student) error {
	st.ID = int64(len(s.students) + 1)
	s.students = append(s.students, *st)
	return nil
}

func (s *stubStudentRepo) UpdateInterventionStatus(_ context.Context, id int64, status string) error {
	if s.statusUpdates == nil {
		s.statusUpdates = map[int64]string{}
	}
	s.statusUpdates[id] = status
	return nil
}

func newStudentRouter(repo *stubStudentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cache := service.NewCacheService(nil, 0, nil, zap.NewNop())
	h := NewStudentHandler(service.NewStudentService(repo, cache, zap.NewNop()), zap.NewNop())

	router := gin.New()
	router.GET("/students", h.List)
	router.POST("/students", h.Create)
	router.PUT("/students", h.UpdateStatus)
	return router
}

func TestStudentHandlerCreate(t *testing.T) {
	repo := &stubStudentRepo{}
	router := newStudentRouter(repo)

	rec := postJSON(router, "/students", `{
		"name":"Andi","age":16,"gender":"Male",
		"academic_performance":40,"attendance":50,
		"socio_economic_status":4,"family_support":3
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Student was created.", body["message"])
	assert.EqualValues(t, 1, body["id"])

	require.Len(t, repo.students, 1)
	assert.InDelta(t, 98.0, repo.students[0].DropoutRisk, 0.0001)
	assert.Equal(t, models.InterventionStatusPending, repo.students[0].InterventionStatus)
}

func TestStudentHandlerListHighRisk(t *testing.T) {
	repo := &stubStudentRepo{students: []models.Student{
		{ID: 1, Name: "Low", DropoutRisk: 20},
		{ID: 2, Name: "High", DropoutRisk: 85},
	}}
	router := newStudentRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students?high_risk=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var students []models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	require.Len(t, students, 1)
	assert.Equal(t, "High", students[0].Name)
}

func TestStudentHandlerGetByID(t *testing.T) {
	repo := &stubStudentRepo{students: []models.Student{{ID: 2, Name: "Sari"}}}
	router := newStudentRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students?id=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var student models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &student))
	assert.Equal(t, "Sari", student.Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students?id=99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentHandlerUpdateStatus(t *testing.T) {
	repo := &stubStudentRepo{students: []models.Student{{ID: 4}}}
	router := newStudentRouter(repo)

	rec := postPut(router, "/students", `{"id":4,"intervention_status":"In Progress"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Student intervention status was updated.", body["message"])
	assert.Equal(t, models.InterventionStatusInProgress, repo.statusUpdates[4])
}

func TestStudentHandlerUpdateStatusRejectsUnknownState(t *testing.T) {
	router := newStudentRouter(&stubStudentRepo{})

	rec := postPut(router, "/students", `{"id":4,"intervention_status":"Escalated"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func postPut(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}
