package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
)

// AssignMentee links the mentee registered under menteeEmail to mentorID.
// Failures are checked in a fixed order: unknown email, wrong role, inactive
// account, mentee already taken, mentee already listed. The store repeats the
// "already taken" check atomically, so a concurrent assign loses with
// ErrAlreadyAssigned. There is no reassign: remove first, then assign.
func (s *Service) AssignMentee(ctx context.Context, mentorID, menteeEmail string) (*Profile, error) {
	mentor, err := s.load(ctx, mentorID, apperr.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(mentor, entity.RoleMentor); err != nil {
		return nil, err
	}

	mentee, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(menteeEmail))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.ErrMenteeNotFound.WithMessage("No user found with this email")
		}
		return nil, s.internal("lookup mentee", err, mentorID)
	}
	mp, ok := mentee.Mentee()
	switch {
	case !ok:
		return nil, apperr.ErrInvalidRole
	case !mentee.IsActive:
		return nil, apperr.ErrInactiveAccount
	case mp.MentorID != "":
		return nil, apperr.ErrAlreadyAssigned
	case mentor.HasMentee(mentee.ID):
		return nil, apperr.ErrDuplicateAssignment
	}

	if err := s.Repo.LinkMentee(ctx, mentor.ID, mentee.ID); err != nil {
		return nil, s.internal("link mentee", err, mentorID)
	}
	helpers.LogInfo(s.Logger, "mentee assigned", logrus.Fields{"mentor_id": mentor.ID, "mentee_id": mentee.ID})
	s.notifyAssigned(ctx, mentor, mentee)
	return s.Profile(ctx, mentor.ID)
}

// RemoveMentee clears the link between mentorID and menteeID on both ends.
func (s *Service) RemoveMentee(ctx context.Context, mentorID, menteeID string) (*Profile, error) {
	mentor, err := s.load(ctx, mentorID, apperr.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(mentor, entity.RoleMentor); err != nil {
		return nil, err
	}
	mentee, err := s.load(ctx, menteeID, apperr.ErrMenteeNotFound)
	if err != nil {
		return nil, err
	}
	if mentee.MentorID() != mentor.ID {
		return nil, apperr.ErrNotOwned
	}

	if err := s.Repo.UnlinkMentee(ctx, mentor.ID, mentee.ID); err != nil {
		return nil, s.internal("unlink mentee", err, mentorID)
	}
	helpers.LogInfo(s.Logger, "mentee removed", logrus.Fields{"mentor_id": mentor.ID, "mentee_id": mentee.ID})
	s.notifyRemoved(ctx, mentor, mentee)
	return s.Profile(ctx, mentor.ID)
}
