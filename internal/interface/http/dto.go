package handlers

import (
	"time"

	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
)

// SafeUser is the only shape a user leaves the API in. It has no password field.
type SafeUser struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Role        entity.Role          `json:"role"`
	Phone       string               `json:"phone,omitempty"`
	Bio         string               `json:"bio,omitempty"`
	AvatarURL   string               `json:"avatarUrl,omitempty"`
	Expertise   []string             `json:"expertise"`
	Mentor      *entity.UserSummary  `json:"mentor"`
	Mentees     []entity.UserSummary `json:"mentees"`
	MenteeCount int                  `json:"menteeCount"`
	IsActive    bool                 `json:"isActive"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func toSafeUser(p *application.Profile) SafeUser {
	u := p.User
	out := SafeUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role(),
		Phone:     u.Phone,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Expertise: u.Expertise(),
		Mentor:    p.Mentor,
		Mentees:   p.Mentees,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if out.Expertise == nil {
		out.Expertise = []string{}
	}
	if out.Mentees == nil {
		out.Mentees = []entity.UserSummary{}
	}
	out.MenteeCount = len(out.Mentees)
	return out
}

type signupRequest struct {
	Name      string   `json:"name" binding:"required,notblank,personname"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,pwd,pwdmix"`
	Role      string   `json:"role" binding:"required,role"`
	Phone     string   `json:"phone" binding:"omitempty,phone"`
	Expertise []string `json:"expertise" binding:"omitempty,max=20,dive,expertiseitem"`
	Bio       string   `json:"bio" binding:"omitempty,biotext"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name      *string   `json:"name" binding:"omitempty,notblank,personname"`
	Phone     *string   `json:"phone" binding:"omitempty,phone"`
	Bio       *string   `json:"bio" binding:"omitempty,biotext"`
	Expertise *[]string `json:"expertise" binding:"omitempty,max=20,dive,expertiseitem"`
}

type assignMenteeRequest struct {
	MenteeEmail string `json:"menteeEmail" binding:"required,email"`
}

type menteeURI struct {
	MenteeID string `uri:"menteeId" binding:"required,uuid"`
}
