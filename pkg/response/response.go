package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
)

// Envelope keys shared by every response. Payload keys sit next to them at
// the top level: {"success": true, "message": "...", "token": "...", "user": {...}}.
const (
	KeySuccess   = "success"
	KeyMessage   = "message"
	KeyCode      = "code"
	KeyError     = "error"
	KeyRequestID = "request_id"
)

func envelope(c *gin.Context, success bool, message string, payload gin.H) gin.H {
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body[KeySuccess] = success
	body[KeyMessage] = message
	if rid := c.GetString("request_id"); rid != "" {
		body[KeyRequestID] = rid
	}
	return body
}

// Success writes a successful envelope merged with payload.
func Success(c *gin.Context, status int, message string, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, envelope(c, true, message, payload))
}

// Error writes a failure envelope and aborts the chain.
// details is omitted when nil.
func Error(c *gin.Context, status int, code, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	payload := gin.H{KeyCode: code}
	if details != nil {
		payload[KeyError] = details
	}
	c.AbortWithStatusJSON(status, envelope(c, false, message, payload))
}

// FromError renders err using its apperr kind. Internal causes are only
// exposed when debug is true.
func FromError(c *gin.Context, err error, debug bool) {
	e := apperr.From(err)
	var details any
	if debug && e.Kind == apperr.KindInternal && e.Err != nil {
		details = e.Err.Error()
	}
	Error(c, apperr.HTTPStatus(e.Kind), e.Code, e.Message, details)
}
