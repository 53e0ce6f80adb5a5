package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dropout-watch-api/internal/service"
)

func newChatRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/chat", NewChatHandler(service.NewChatService()).Reply)
	return router
}

func TestChatHandlerReply(t *testing.T) {
	router := newChatRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Hello! How can I help you today?", body["response"])
}

func TestChatHandlerRequiresMessage(t *testing.T) {
	router := newChatRouter()

	for _, payload := range []string{`{}`, `{"message":"   "}`, `not-json`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, payload)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Message is required", body["message"])
	}
}
