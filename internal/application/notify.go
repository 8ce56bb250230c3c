package application

import (
	"context"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/pkg/mailer"
	tpl "github.com/oksasatya/go-mentorship-tracker/pkg/mailer/templates"
)

// Side effects below are best effort: failures are logged and never fail the
// operation that triggered them.

func (s *Service) indexMentor(ctx context.Context, u *entity.User) {
	if s.Index == nil || u.Role() != entity.RoleMentor {
		return
	}
	if err := s.Index.Upsert(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index mentor failed")
	}
}

func (s *Service) unindex(ctx context.Context, id string) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Remove(ctx, id); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("remove mentor from index failed")
	}
}

func (s *Service) publish(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil {
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("template", job.Template).Warn("failed to publish email job")
	}
}

func (s *Service) notifyWelcome(ctx context.Context, u *entity.User) {
	data := tpl.NewWelcomeData(s.Brand, u.Name, u.Email, string(u.Role()),
		tpl.WithTime(s.now()),
		tpl.WithExpertise(u.Expertise()),
	)
	s.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.Welcome, Data: data})
}

func (s *Service) notifyAssigned(ctx context.Context, mentor, mentee *entity.User) {
	data := tpl.NewMenteeAssignedData(s.Brand, mentee.Name, mentee.Email, mentor.Name, mentor.Email, tpl.WithTime(s.now()))
	s.publish(ctx, mailer.EmailJob{To: mentee.Email, Template: tpl.MenteeAssigned, Data: data})
}

func (s *Service) notifyRemoved(ctx context.Context, mentor, mentee *entity.User) {
	data := tpl.NewMenteeRemovedData(s.Brand, mentee.Name, mentee.Email, mentor.Name, mentor.Email, tpl.WithTime(s.now()))
	s.publish(ctx, mailer.EmailJob{To: mentee.Email, Template: tpl.MenteeRemoved, Data: data})
}

func (s *Service) notifyDeactivated(ctx context.Context, u *entity.User) {
	data := tpl.NewAccountDeactivatedData(s.Brand, u.Name, u.Email, tpl.WithTime(s.now()))
	s.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.AccountDeactivated, Data: data})
}
