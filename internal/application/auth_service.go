package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
)

type SignupInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	Phone     string
	Bio       string
	Expertise []string
}

// Signup registers a user with a role fixed for the account's lifetime and
// returns a token for it.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, apperr.ErrValidation.WithMessage("Role must be either mentor or mentee")
	}
	profile, err := entity.NewProfile(role, in.Expertise)
	if err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(in.Email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.ErrEmailTaken
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, s.internal("lookup email", err, "")
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		s.Logger.WithError(err).Error("hash password failed")
		return nil, apperr.Internal(err)
	}
	u := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Bio:          strings.TrimSpace(in.Bio),
		Profile:      profile,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, s.internal("create user", err, "")
	}

	token, exp, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role()}).Info("user registered")
	s.indexMentor(ctx, u)
	s.notifyWelcome(ctx, u)
	return &AuthResult{Token: token, ExpiresAt: exp, Profile: &Profile{User: u, Mentees: []entity.UserSummary{}}}, nil
}

// Login checks credentials. Unknown emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, s.internal("lookup email", err, "")
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, apperr.ErrAccountDeactivated
	}
	token, exp, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	p, err := s.populate(ctx, u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, Profile: p}, nil
}

// ResolveActor walks the token part of the access gate: token present,
// token valid, user resolved, user active.
func (s *Service) ResolveActor(ctx context.Context, token string) (*entity.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.ErrUnauthenticated
	}
	userID, err := s.JWT.Verify(token)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return nil, apperr.ErrInvalidToken.WithMessage("Token expired")
		}
		return nil, apperr.ErrInvalidToken
	}
	u, err := s.load(ctx, userID, apperr.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, apperr.ErrAccountDeactivated
	}
	return u, nil
}

// RequireRole denies actors whose role is not among roles.
func RequireRole(actor *entity.User, roles ...entity.Role) error {
	for _, r := range roles {
		if actor.Role() == r {
			return nil
		}
	}
	return apperr.ErrForbidden.WithMessage("User role " + string(actor.Role()) + " is not authorized to access this route")
}

// CheckOwnership allows self access, a mentor acting on its own mentee and a
// mentee acting on its own mentor.
func CheckOwnership(actor *entity.User, ownerID string) (entity.Relation, error) {
	rel := actor.RelationTo(ownerID)
	if rel == entity.RelationNone {
		return rel, apperr.ErrForbidden.WithMessage("Access denied: insufficient permissions")
	}
	return rel, nil
}
