package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/response"
)

const maxAvatarBytes = 5 << 20

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
	Debug  bool // expose internal error causes
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, debug bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Debug: debug}
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Phone:     req.Phone,
		Bio:       req.Bio,
		Expertise: req.Expertise,
	})
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      toSafeUser(res.Profile),
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      toSafeUser(res.Profile),
	})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	p, err := h.Svc.Profile(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "User profile retrieved", gin.H{"user": toSafeUser(p)})
}

// UpdateMe PUT /api/auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.Logger, err)
		return
	}
	in := application.UpdateProfileInput{Name: req.Name, Phone: req.Phone, Bio: req.Bio}
	if req.Expertise != nil {
		in.Expertise = *req.Expertise
		if in.Expertise == nil {
			in.Expertise = []string{}
		}
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), u.ID, in)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"user": toSafeUser(p)})
}

// DeleteMe DELETE /api/auth/me[?permanent=true]
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	permanent, _ := strconv.ParseBool(c.Query("permanent"))
	var err error
	msg := "Account deactivated"
	if permanent {
		err = h.Svc.Delete(c.Request.Context(), u.ID)
		msg = "Account deleted"
	} else {
		err = h.Svc.Deactivate(c.Request.Context(), u.ID)
	}
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, msg, gin.H{"id": u.ID, "permanent": permanent})
}

// UploadAvatar POST /api/auth/me/avatar (multipart field "avatar")
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperr.ErrValidation.Code, "avatar file is required", nil)
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error(c, http.StatusBadRequest, apperr.ErrValidation.Code, "avatar must be at most 5MB", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.Logger, apperr.Internal(err), h.Debug)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		contentType = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			respondError(c, h.Logger, apperr.Internal(err), h.Debug)
			return
		}
	}

	p, err := h.Svc.UploadAvatar(c.Request.Context(), u.ID, fh.Filename, contentType, f)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "Avatar updated", gin.H{"user": toSafeUser(p)})
}

// AssignMentee POST /api/auth/assign-mentee
func (h *AuthHandler) AssignMentee(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	var req assignMenteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.AssignMentee(c.Request.Context(), u.ID, req.MenteeEmail)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "Mentee assigned successfully", gin.H{"mentor": toSafeUser(p)})
}

// RemoveMentee DELETE /api/auth/remove-mentee/:menteeId
func (h *AuthHandler) RemoveMentee(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	var uri menteeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.RemoveMentee(c.Request.Context(), u.ID, uri.MenteeID)
	if err != nil {
		respondError(c, h.Logger, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, "Mentee removed successfully", gin.H{"mentor": toSafeUser(p)})
}
