package application

import (
	"context"
	"io"
	"strings"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
)

// UpdateProfileInput carries the fields a user may change; nil means unchanged.
type UpdateProfileInput struct {
	Name      *string
	Phone     *string
	Bio       *string
	Expertise []string // nil means unchanged
}

func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.load(ctx, userID, apperr.ErrNotFound.WithMessage("User not found"))
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, u)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*Profile, error) {
	u, err := s.load(ctx, userID, apperr.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	if in.Expertise != nil {
		cleaned := entity.CleanExpertise(in.Expertise)
		switch p := u.Profile.(type) {
		case *entity.MenteeProfile:
			if len(cleaned) > 0 {
				return nil, apperr.ErrMenteeExpertise
			}
		case *entity.MentorProfile:
			if len(cleaned) == 0 {
				return nil, apperr.ErrExpertiseRequired
			}
			p.Expertise = cleaned
		}
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, s.internal("update profile", err, u.ID)
	}
	s.indexMentor(ctx, u)
	return s.populate(ctx, u)
}

// UploadAvatar stores an image and points the user's avatar at it. The
// previous avatar is removed on a best effort basis.
func (s *Service) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (*Profile, error) {
	if s.Avatars == nil {
		return nil, apperr.ErrUnavailable.WithMessage("Avatar storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.ErrValidation.WithMessage("Avatar must be an image")
	}
	u, err := s.load(ctx, userID, apperr.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	url, err := s.Avatars.Upload(ctx, u.ID, filename, contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("avatar upload failed")
		return nil, apperr.ErrUnavailable.WithMessage("Avatar upload failed").Wrap(err)
	}
	previous := u.AvatarURL
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, s.internal("save avatar url", err, u.ID)
	}
	if previous != "" && previous != url {
		if err := s.Avatars.Delete(ctx, previous); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("delete previous avatar failed")
		}
	}
	s.indexMentor(ctx, u)
	return s.populate(ctx, u)
}

// Deactivate is the soft removal path. Links are released in the same store
// transaction that flips the account off.
func (s *Service) Deactivate(ctx context.Context, userID string) error {
	u, err := s.load(ctx, userID, apperr.ErrUserNotFound)
	if err != nil {
		return err
	}
	if err := s.Repo.Deactivate(ctx, u.ID); err != nil {
		return s.internal("deactivate user", err, u.ID)
	}
	s.Logger.WithField("user_id", u.ID).Info("user deactivated")
	s.unindex(ctx, u.ID)
	s.notifyDeactivated(ctx, u)
	return nil
}

// Delete removes the account permanently with the same link cleanup as Deactivate.
func (s *Service) Delete(ctx context.Context, userID string) error {
	u, err := s.load(ctx, userID, apperr.ErrUserNotFound)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, u.ID); err != nil {
		return s.internal("delete user", err, u.ID)
	}
	s.Logger.WithField("user_id", u.ID).Info("user deleted")
	s.unindex(ctx, u.ID)
	if s.Avatars != nil && u.AvatarURL != "" {
		if err := s.Avatars.Delete(ctx, u.AvatarURL); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("delete avatar failed")
		}
	}
	return nil
}

// MyMentor returns the mentee's mentor, or nil when unassigned.
func (s *Service) MyMentor(ctx context.Context, menteeID string) (*entity.UserSummary, error) {
	u, err := s.load(ctx, menteeID, apperr.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	p, err := s.populate(ctx, u)
	if err != nil {
		return nil, err
	}
	return p.Mentor, nil
}

// SearchMentors queries the mentor index. Without an index the result is empty.
func (s *Service) SearchMentors(ctx context.Context, q string, size int) ([]entity.MentorListing, error) {
	if s.Index == nil {
		return []entity.MentorListing{}, nil
	}
	res, err := s.Index.Search(ctx, q, size)
	if err != nil {
		s.Logger.WithError(err).WithField("q", q).Error("mentor search failed")
		return nil, apperr.ErrUnavailable.WithMessage("Mentor search is unavailable").Wrap(err)
	}
	return res, nil
}
