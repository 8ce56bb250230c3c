package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "user"
)

// BearerToken extracts the token from "Authorization: Bearer <token>".
// It returns "" for a missing or malformed header.
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Auth resolves the bearer token to an active user and stores it in the Gin
// context under "user" (and its id under "userID").
func Auth(svc *application.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.ResolveActor(c.Request.Context(), BearerToken(c))
		if err != nil {
			response.FromError(c, err, false)
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// RequireRole must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.FromError(c, apperr.ErrUnauthenticated, false)
			return
		}
		if err := application.RequireRole(u, roles...); err != nil {
			response.FromError(c, err, false)
			return
		}
		c.Next()
	}
}

// RequireOwnership checks the actor against the user id in the named path
// parameter and stores the resolved relation under "relation".
func RequireOwnership(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.FromError(c, apperr.ErrUnauthenticated, false)
			return
		}
		rel, err := application.CheckOwnership(u, c.Param(param))
		if err != nil {
			response.FromError(c, err, false)
			return
		}
		c.Set("relation", rel)
		c.Next()
	}
}
