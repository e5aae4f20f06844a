package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuth struct {
	tokens map[string]*util.Claims
}

func (f *fakeAuth) Authenticate(token string) (*model.User, *util.Claims, error) {
	claims, ok := f.tokens[token]
	if !ok {
		return nil, nil, util.ErrInvalidCredentials
	}
	return &model.User{BaseModel: model.BaseModel{ID: claims.UserID}, Email: claims.Email}, claims, nil
}

type activityRecorder struct {
	ids []uint
	err error
}

func (r *activityRecorder) UpdateLastActivity(userID uint) error {
	r.ids = append(r.ids, userID)
	return r.err
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	r.GET("/protected", handlers...)
	return r
}

func testAuth() *fakeAuth {
	return &fakeAuth{tokens: map[string]*util.Claims{
		"admin-token": {UserID: 1, Email: "admin@example.com", Roles: []string{"admin"}},
		"user-token":  {UserID: 2, Email: "user@example.com", Roles: []string{"user"}},
	}}
}

func TestAuthMiddlewareTokenSources(t *testing.T) {
	r := newRouter(AuthMiddleware(testAuth()))

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		target string
		status int
	}{
		{"missing token", func(req *http.Request) {}, "/protected", http.StatusUnauthorized},
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer user-token") }, "/protected", http.StatusOK},
		{"authentication token header", func(req *http.Request) { req.Header.Set("Authentication-Token", "admin-token") }, "/protected", http.StatusOK},
		{"query parameter", func(req *http.Request) {}, "/protected?token=user-token", http.StatusOK},
		{"unknown token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, "/protected", http.StatusUnauthorized},
		{"authorization without bearer", func(req *http.Request) { req.Header.Set("Authorization", "user-token") }, "/protected", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRoleMiddlewareIsStrict(t *testing.T) {
	auth := testAuth()

	tests := []struct {
		name   string
		token  string
		role   model.RoleName
		status int
	}{
		{"admin on admin route", "admin-token", model.RoleAdmin, http.StatusOK},
		{"user on admin route", "user-token", model.RoleAdmin, http.StatusForbidden},
		{"user on user route", "user-token", model.RoleUser, http.StatusOK},
		{"admin on user route", "admin-token", model.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(AuthMiddleware(auth), RoleMiddleware(tt.role))
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRoleMiddlewareWithoutClaims(t *testing.T) {
	r := newRouter(RoleMiddleware(model.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActivityMiddlewareRecordsUser(t *testing.T) {
	rec := &activityRecorder{err: errors.New("db down")}
	r := newRouter(AuthMiddleware(testAuth()), ActivityMiddleware(rec))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 更新失败不影响请求
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{2}, rec.ids)
}
