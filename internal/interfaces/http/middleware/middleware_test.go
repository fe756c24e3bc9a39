package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.Any("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session": SessionID(c), "admin": c.GetString(AdminUserKey)})
	})
	return r
}

func TestSession_MintsAndReusesCookie(t *testing.T) {
	r := newEngine(Session(time.Hour, false))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.NoError(t, uuid.Validate(cookies[0].Value))
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), cookies[0].Value)
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	r := newEngine(Session(time.Hour, false))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotContains(t, w.Body.String(), "etc")
}

type stubFlag struct {
	on  bool
	err error
}

func (s stubFlag) IsAdmin(context.Context, string) (bool, error) { return s.on, s.err }

func tokens(t *testing.T) (*auth.JWTManager, string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = strings.Repeat("z", 32)
	cfg.JWT.AccessTokenExpiry = time.Hour
	j := auth.NewJWTManager(cfg)
	tok, err := j.GenerateAccessToken("admin")
	require.NoError(t, err)
	return j, tok
}

func TestAdminGate(t *testing.T) {
	j, tok := tokens(t)

	tests := []struct {
		name      string
		flag      stubFlag
		tokenOnly bool
		header    string
		want      int
	}{
		{"session flag", stubFlag{on: true}, false, "", http.StatusOK},
		{"no flag", stubFlag{}, false, "", http.StatusUnauthorized},
		{"valid token", stubFlag{}, true, "Bearer " + tok, http.StatusOK},
		{"bad token", stubFlag{on: true}, false, "Bearer nope", http.StatusUnauthorized},
		{"token required", stubFlag{on: true}, true, "", http.StatusUnauthorized},
		{"flag store down", stubFlag{err: errors.New("redis down")}, false, "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(AdminGate(j, tt.flag, tt.tokenOnly, logger.Discard()))
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.CORSAllowedOrigins = []string{"http://localhost:5173", "*.example.com"}
	cfg.Security.CORSAllowedMethods = []string{"GET", "POST"}
	r := newEngine(CORS(cfg))

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evilexample.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestSizeLimit(t *testing.T) {
	r := newEngine(RequestSizeLimit(4))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NoError(t, uuid.Validate(w.Header().Get(RequestIDHeader)))
}
