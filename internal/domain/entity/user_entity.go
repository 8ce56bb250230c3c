package entity

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
)

const (
	NameMinLen = 2
	NameMaxLen = 100
	BioMaxLen  = 500
)

// User is the aggregate root for the mentorship domain.
// PasswordHash holds a bcrypt digest and is never serialized.
type User struct {
	ID           string
	Email        string
	PasswordHash string `json:"-"`
	Name         string
	Phone        string
	Bio          string
	AvatarURL    string
	Profile      RoleProfile
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the populated view of a related user.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewProfile builds the role-specific part of a new user.
func NewProfile(role Role, expertise []string) (RoleProfile, error) {
	expertise = CleanExpertise(expertise)
	switch role {
	case RoleMentor:
		if len(expertise) == 0 {
			return nil, apperr.ErrExpertiseRequired
		}
		return &MentorProfile{Expertise: expertise}, nil
	case RoleMentee:
		if len(expertise) > 0 {
			return nil, apperr.ErrMenteeExpertise
		}
		return &MenteeProfile{}, nil
	default:
		return nil, apperr.ErrInvalidProfile.WithMessage("Role must be either mentor or mentee")
	}
}

func (u *User) Role() Role {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

func (u *User) Mentor() (*MentorProfile, bool) {
	p, ok := u.Profile.(*MentorProfile)
	return p, ok
}

func (u *User) Mentee() (*MenteeProfile, bool) {
	p, ok := u.Profile.(*MenteeProfile)
	return p, ok
}

// Expertise is empty for mentees.
func (u *User) Expertise() []string {
	if p, ok := u.Mentor(); ok {
		return p.Expertise
	}
	return nil
}

// MentorID is empty for mentors and for unassigned mentees.
func (u *User) MentorID() string {
	if p, ok := u.Mentee(); ok {
		return p.MentorID
	}
	return ""
}

// MenteeIDs is empty for mentees.
func (u *User) MenteeIDs() []string {
	if p, ok := u.Mentor(); ok {
		return p.Mentees
	}
	return nil
}

func (u *User) HasMentee(id string) bool {
	return slices.Contains(u.MenteeIDs(), id)
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role()}
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	cp := *u
	if u.Profile != nil {
		cp.Profile = u.Profile.clone()
	}
	return &cp
}

// Validate checks the per-record invariants. Cross-record invariants
// (mentor exists and lists this mentee, unique email) belong to the store.
func (u *User) Validate() error {
	if u.Email == "" || u.Email != NormalizeEmail(u.Email) {
		return apperr.ErrInvalidProfile.WithMessage("Email must be a non-empty lowercase address")
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(u.Name)); n < NameMinLen || n > NameMaxLen {
		return apperr.ErrInvalidProfile.WithMessage("Name must be between 2 and 100 characters")
	}
	if utf8.RuneCountInString(u.Bio) > BioMaxLen {
		return apperr.ErrInvalidProfile.WithMessage("Bio cannot be more than 500 characters")
	}
	switch p := u.Profile.(type) {
	case *MentorProfile:
		if len(p.Expertise) == 0 {
			return apperr.ErrExpertiseRequired
		}
		if u.ID != "" && slices.Contains(p.Mentees, u.ID) {
			return apperr.ErrInvalidProfile.WithMessage("A mentor cannot mentor itself")
		}
	case *MenteeProfile:
		if u.ID != "" && p.MentorID == u.ID {
			return apperr.ErrInvalidProfile.WithMessage("A mentee cannot be its own mentor")
		}
	default:
		return apperr.ErrInvalidProfile.WithMessage("Role must be either mentor or mentee")
	}
	return nil
}
