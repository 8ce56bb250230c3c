package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/repository"
	"github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/memory"
	"github.com/oksasatya/go-mentorship-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
)

// unreachableRepo fails every lookup the way a lost database connection does.
type unreachableRepo struct{ repository.UserRepository }

func (unreachableRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errors.New("connection refused")
}

func loginEngine(t *testing.T, repo repository.UserRepository) (*gin.Engine, *test.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	svc := application.NewService(repo,
		helpers.NewJWTManager("test-secret", time.Hour, "test"),
		helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewDiscardLogger(),
	)
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.POST("/api/auth/login", NewAuthHandler(svc, logger, false).Login)
	return r, hook
}

func postLogin(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerLogsServerFailuresWithRequestID(t *testing.T) {
	r, hook := loginEngine(t, unreachableRepo{})

	w := postLogin(r, `{"email":"bob@example.com","password":"Secret123"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "connection refused")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, "request failed", entry.Message)
	require.Equal(t, w.Header().Get(middleware.HeaderRequestID), entry.Data["request_id"])
	require.Equal(t, "/api/auth/login", entry.Data["route"])
}

func TestHandlerLogsRejectedPayloadAtDebug(t *testing.T) {
	r, hook := loginEngine(t, memory.NewUserRepository())

	w := postLogin(r, `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.DebugLevel, entry.Level)
	require.Equal(t, "request rejected", entry.Message)
	require.NotEmpty(t, entry.Data["fields"])
}

func TestHandlerDoesNotLogClientErrors(t *testing.T) {
	r, hook := loginEngine(t, memory.NewUserRepository())

	w := postLogin(r, `{"email":"nobody@example.com","password":"Secret123"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Empty(t, hook.AllEntries())
}
