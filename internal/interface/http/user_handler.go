package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/pkg/response"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
	Debug  bool
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger, debug bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Debug: debug}
}

// GetByID GET /api/users/:id, behind RequireOwnership("id")
func (h *UserHandler) GetByID(c *gin.Context) {
	p, err := h.Svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", gin.H{"user": toSafeUser(p)})
}

// MyMentor GET /api/users/me/mentor (mentees only)
func (h *UserHandler) MyMentor(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	m, err := h.Svc.MyMentor(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	msg := "Mentor retrieved"
	if m == nil {
		msg = "No mentor assigned"
	}
	response.Success(c, http.StatusOK, msg, gin.H{"mentor": m})
}

// SearchMentors GET /api/users/mentors/search?q=&size=
func (h *UserHandler) SearchMentors(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	mentors, err := h.Svc.SearchMentors(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "Mentors retrieved", gin.H{"mentors": mentors, "count": len(mentors)})
}
