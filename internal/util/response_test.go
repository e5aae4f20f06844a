package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNotFoundAndInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	NotFound(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found", decodeResponse(t, w).Message)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	LogInternalError(c, errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Internal server error", resp.Message)
	assert.Empty(t, resp.Error)
}

func TestHandleErrorMapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, "Failed to submit score", ErrQuizAlreadyAttempted)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Quiz already attempted", decodeResponse(t, w).Message)
}
