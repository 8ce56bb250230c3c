package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	handlers "github.com/oksasatya/go-mentorship-tracker/internal/interface/http"
	"github.com/oksasatya/go-mentorship-tracker/internal/interface/middleware"
)

// AuthModule wires account and relationship routes under /api/auth.
// Public: POST /auth/signup, POST /auth/login
// Protected: GET|PUT|DELETE /auth/me, POST /auth/me/avatar
// Mentor only: POST /auth/assign-mentee, DELETE /auth/remove-mentee/:menteeId
type AuthModule struct {
	Handler *handlers.AuthHandler
	Svc     *application.Service
	Redis   *redis.Client // nil disables rate limiting
}

func NewAuthModule(h *handlers.AuthHandler, svc *application.Service, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Svc: svc, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// credential endpoints never get a bypass
	signupLimiter := middleware.RateLimit(m.Redis, 10, time.Hour, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Svc))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPaths("/api/auth/me")))
	{
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/me", m.Handler.UpdateMe)
		auth.DELETE("/me", m.Handler.DeleteMe)
		auth.POST("/me/avatar", m.Handler.UploadAvatar)

		mentor := auth.Group("", middleware.RequireRole(entity.RoleMentor))
		mentor.POST("/assign-mentee", m.Handler.AssignMentee)
		mentor.DELETE("/remove-mentee/:menteeId", m.Handler.RemoveMentee)
	}
}
