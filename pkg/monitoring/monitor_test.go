package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	Init()
	Init()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/subjects/:subjectId", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", PrometheusHandler())

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/subjects/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{endpoint="/api/subjects/:subjectId",method="GET",status="204"} 2`)
	assert.Contains(t, w.Body.String(), "quiz_scores_submitted_total")
}
