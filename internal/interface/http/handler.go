package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/response"
	"github.com/oksasatya/go-mentorship-tracker/pkg/validation"
)

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"route":      c.FullPath(),
	}
}

// bindError answers 400 VALIDATION_FAILED with per-field details.
func bindError(c *gin.Context, logger *logrus.Logger, err error) {
	details := validation.ToDetails(err)
	if logger != nil {
		fields := requestFields(c)
		fields["fields"] = details
		logger.WithFields(fields).Debug("request rejected")
	}
	response.Error(c, http.StatusBadRequest, apperr.ErrValidation.Code, validation.Message(details), details)
}

// respondError renders err. Internal and unavailable failures are logged
// with the request id so they can be matched to the client's report.
func respondError(c *gin.Context, logger *logrus.Logger, err error, debug bool) {
	if logger != nil {
		switch apperr.KindOf(err) {
		case apperr.KindInternal, apperr.KindUnavailable:
			logger.WithFields(requestFields(c)).WithError(err).Error("request failed")
		}
	}
	response.FromError(c, err, debug)
}

// actor returns the user stored by the Auth middleware or answers 401.
func actor(c *gin.Context) (*entity.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.ErrUnauthenticated, false)
	}
	return u, ok
}
