package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-mentorship-tracker/internal/interface/http"
)

// SystemModule serves GET / and GET /health at the engine root.
type SystemModule struct {
	Handler *handlers.SystemHandler
}

func NewSystemModule(h *handlers.SystemHandler) *SystemModule {
	return &SystemModule{Handler: h}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Welcome)
	rg.GET("/health", m.Handler.Health)
}
