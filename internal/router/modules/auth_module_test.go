package modules

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-mentorship-tracker/internal/interface/http"
	"github.com/oksasatya/go-mentorship-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
)

func newAuthEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := helpers.NewDiscardLogger()
	svc := application.NewService(memory.NewUserRepository(),
		helpers.NewJWTManager("test-secret", time.Hour, "test"),
		helpers.NewPasswordHasher(bcrypt.MinCost),
		logger,
	)
	r := gin.New()
	r.Use(middleware.RealIP())
	NewAuthModule(handlers.NewAuthHandler(svc, logger, false), svc, rdb).Register(r.Group("/api"))
	return r
}

// Every attempt comes from the same public peer but claims a different
// private address in X-Forwarded-For.
func spoofedPost(r http.Handler, path string, i int, body string) int {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.RemoteAddr = "203.0.113.9:4000"
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "10.0.0."+strconv.Itoa(i))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestLoginLimiterIgnoresForwardedPrivateAddress(t *testing.T) {
	r := newAuthEngine(t)
	body := `{"email":"victim@example.com","password":"Guess123"}`
	for i := 1; i <= 10; i++ {
		require.Equal(t, http.StatusUnauthorized, spoofedPost(r, "/api/auth/login", i, body), "attempt %d", i)
	}
	require.Equal(t, http.StatusTooManyRequests, spoofedPost(r, "/api/auth/login", 11, body))
	require.Equal(t, http.StatusTooManyRequests, spoofedPost(r, "/api/auth/login", 12, body))
}

func TestSignupLimiterIgnoresForwardedPrivateAddress(t *testing.T) {
	r := newAuthEngine(t)
	for i := 1; i <= 10; i++ {
		require.Equal(t, http.StatusBadRequest, spoofedPost(r, "/api/auth/signup", i, "{"), "attempt %d", i)
	}
	require.Equal(t, http.StatusTooManyRequests, spoofedPost(r, "/api/auth/signup", 11, "{"))
}
