package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", io.Discard)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer   ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := BearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.token, token, tc.header)
	}
}

func TestAuthAndRoles(t *testing.T) {
	tokens := auth.NewTokenManager("middleware_test_secret", time.Hour)

	r := gin.New()
	r.GET("/teacher-only", AuthMiddleware(tokens), RequireRoles(models.UserRoleTeacher), func(c *gin.Context) {
		id, ok := GetUserID(c)
		require.True(t, ok)
		role, _ := GetRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	teacherToken, err := tokens.Generate(7, models.UserRoleTeacher)
	require.NoError(t, err)
	studentToken, err := tokens.Generate(8, models.UserRoleStudent)
	require.NoError(t, err)

	w := perform(r, http.MethodGet, "/teacher-only", map[string]string{"Authorization": "Bearer " + teacherToken})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"TEACHER"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/teacher-only", map[string]string{"Authorization": "Bearer " + studentToken})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"FORBIDDEN"`)

	w = perform(r, http.MethodGet, "/teacher-only", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`)

	other := auth.NewTokenManager("another_secret", time.Hour)
	forged, err := other.Generate(7, models.UserRoleTeacher)
	require.NoError(t, err)
	w = perform(r, http.MethodGet, "/teacher-only", map[string]string{"Authorization": "Bearer " + forged})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRoles(models.UserRoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.GetRequestID(c.Request.Context()))
	})

	w := perform(r, http.MethodGet, "/", nil)
	generated := w.Header().Get(requestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	incoming := uuid.NewString()
	w = perform(r, http.MethodGet, "/", map[string]string{requestIDHeader: incoming})
	assert.Equal(t, incoming, w.Header().Get(requestIDHeader))

	w = perform(r, http.MethodGet, "/", map[string]string{requestIDHeader: "not a uuid"})
	assert.NotEqual(t, "not a uuid", w.Header().Get(requestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := perform(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"INTERNAL_ERROR"`)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.talemy.fr"}))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/api", map[string]string{
		"Origin":                        "https://app.talemy.fr",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.talemy.fr", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, http.MethodGet, "/api", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
