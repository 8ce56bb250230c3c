package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/response"
)

type SystemHandler struct {
	AppName string
	Env     string
	started time.Time
}

func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{AppName: appName, Env: env, started: time.Now()}
}

// Health GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "Server is running", gin.H{
		"status":      "ok",
		"environment": h.Env,
		"uptime":      time.Since(h.started).Round(time.Second).String(),
		"timestamp":   time.Now().UTC(),
	})
}

// Welcome GET /
func (h *SystemHandler) Welcome(c *gin.Context) {
	response.Success(c, http.StatusOK, "Welcome to the "+h.AppName+" API", gin.H{
		"endpoints": gin.H{
			"health": "GET /health",
			"auth": gin.H{
				"signup":       "POST /api/auth/signup",
				"login":        "POST /api/auth/login",
				"me":           "GET /api/auth/me",
				"updateMe":     "PUT /api/auth/me",
				"deleteMe":     "DELETE /api/auth/me?permanent=false",
				"avatar":       "POST /api/auth/me/avatar",
				"assignMentee": "POST /api/auth/assign-mentee",
				"removeMentee": "DELETE /api/auth/remove-mentee/:menteeId",
			},
			"users": gin.H{
				"get":           "GET /api/users/:id",
				"myMentor":      "GET /api/users/me/mentor",
				"searchMentors": "GET /api/users/mentors/search?q=&size=",
			},
		},
	})
}

// NotFound answers unknown routes with a JSON 404.
func (h *SystemHandler) NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, apperr.ErrNotFound.Code, "Route "+c.Request.URL.Path+" not found", nil)
}
