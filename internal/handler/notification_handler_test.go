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

	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
)

type stubNotificationRepo struct {
	records []models.Notification
	read    []int64
}

func (s *stubNotificationRepo) ListByUser(_ context.Context, userID int64) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range s.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	n.ID = int64(len(s.records) + 1)
	s.records = append(s.records, *n)
	return nil
}

func (s *stubNotificationRepo) MarkRead(_ context.Context, id int64) error {
	s.read = append(s.read, id)
	return nil
}

func newNotificationRouter(repo *stubNotificationRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(service.NewNotificationService(repo))

	router := gin.New()
	router.GET("/notifications", h.List)
	router.POST("/notifications", h.Mutate)
	return router
}

func TestNotificationHandlerListWrapsRecords(t *testing.T) {
	repo := &stubNotificationRepo{records: []models.Notification{
		{ID: 1, UserID: 7, Title: "Welcome", Type: "info"},
		{ID: 2, UserID: 9, Title: "Other user", Type: "info"},
	}}
	router := newNotificationRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications?user_id=7", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Records []models.Notification `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Records, 1)
	assert.Equal(t, "Welcome", body.Records[0].Title)
}

func TestNotificationHandlerMarkRead(t *testing.T) {
	repo := &stubNotificationRepo{}
	router := newNotificationRouter(repo)

	rec := postJSON(router, "/notifications", `{"notification_id":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Notification marked as read.", body["message"])
	assert.Equal(t, []int64{3}, repo.read)
}

func TestNotificationHandlerCreate(t *testing.T) {
	repo := &stubNotificationRepo{}
	router := newNotificationRouter(repo)

	rec := postJSON(router, "/notifications", `{
		"user_id":7,"title":"Risk alert","message":"A student crossed the threshold","type":"warning"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Notification was created.", body["message"])
	require.Len(t, repo.records, 1)
	assert.Equal(t, "warning", repo.records[0].Type)
}

func TestNotificationHandlerListRequiresUserID(t *testing.T) {
	router := newNotificationRouter(&stubNotificationRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
