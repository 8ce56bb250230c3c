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

// UserModule wires the protected /api/users routes.
type UserModule struct {
	Handler *handlers.UserHandler
	Svc     *application.Service
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, svc *application.Service, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Svc: svc, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(
		middleware.Auth(m.Svc),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		users.GET("/me/mentor", middleware.RequireRole(entity.RoleMentee), m.Handler.MyMentor)
		// Search via Elasticsearch; empty when search is disabled
		users.GET("/mentors/search", m.Handler.SearchMentors)
		users.GET("/:id", middleware.RequireOwnership("id"), m.Handler.GetByID)
	}
}
