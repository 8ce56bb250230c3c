// Package memory is an in-process credential store. It keeps both ends of
// every mentor/mentee link explicitly and updates them under one lock.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/repository"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]*entity.User
	byEmail map[string]string

	now func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]*entity.User),
		byEmail: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if u.MentorID() != "" || len(u.MenteeIDs()) > 0 {
		return apperr.ErrInvalidProfile.WithMessage("New users cannot carry mentor links")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return apperr.ErrEmailTaken
	}
	now := r.now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	if p, ok := u.Mentor(); ok && p.Mentees == nil {
		p.Mentees = []string{}
	}
	r.users[u.ID] = u.Clone()
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[entity.NormalizeEmail(email)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r.users[id].Clone(), nil
}

// Update copies profile fields onto the stored record. Role, email, password,
// activity and links are left alone.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := u.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	if cur.Role() != u.Role() {
		return apperr.ErrRoleImmutable
	}
	cur.Name = u.Name
	cur.Phone = u.Phone
	cur.Bio = u.Bio
	cur.AvatarURL = u.AvatarURL
	if p, ok := cur.Mentor(); ok {
		p.Expertise = append([]string(nil), u.Expertise()...)
	}
	cur.UpdatedAt = r.now()
	u.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *UserRepository) Summaries(ctx context.Context, ids []string) ([]entity.UserSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}

// LinkMentee checks and writes both ends while holding the write lock, so two
// concurrent calls for the same mentee cannot both observe it unassigned.
func (r *UserRepository) LinkMentee(ctx context.Context, mentorID, menteeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	mentor, err := r.activeMentor(mentorID)
	if err != nil {
		return err
	}
	mentee, ok := r.users[menteeID]
	if !ok {
		return apperr.ErrMenteeNotFound
	}
	mp, ok := mentee.Mentee()
	if !ok {
		return apperr.ErrInvalidRole
	}
	if !mentee.IsActive {
		return apperr.ErrInactiveAccount
	}
	if mp.MentorID != "" {
		return apperr.ErrAlreadyAssigned
	}
	pp, _ := mentor.Mentor()
	if slices.Contains(pp.Mentees, menteeID) {
		return apperr.ErrDuplicateAssignment
	}

	now := r.now()
	mp.MentorID = mentorID
	pp.Mentees = append(pp.Mentees, menteeID)
	mentee.UpdatedAt, mentor.UpdatedAt = now, now
	return nil
}

func (r *UserRepository) UnlinkMentee(ctx context.Context, mentorID, menteeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	mentee, ok := r.users[menteeID]
	if !ok {
		return apperr.ErrMenteeNotFound
	}
	mp, ok := mentee.Mentee()
	if !ok || mp.MentorID != mentorID {
		return apperr.ErrNotOwned
	}
	now := r.now()
	mp.MentorID = ""
	mentee.UpdatedAt = now
	if mentor, ok := r.users[mentorID]; ok {
		if pp, ok := mentor.Mentor(); ok {
			pp.Mentees = slices.DeleteFunc(pp.Mentees, func(id string) bool { return id == menteeID })
		}
		mentor.UpdatedAt = now
	}
	return nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	r.releaseLinks(u)
	u.IsActive = false
	u.UpdatedAt = r.now()
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	r.releaseLinks(u)
	delete(r.byEmail, u.Email)
	delete(r.users, id)
	return nil
}

// releaseLinks clears both ends of every edge u takes part in. Caller holds mu.
func (r *UserRepository) releaseLinks(u *entity.User) {
	now := r.now()
	switch p := u.Profile.(type) {
	case *entity.MentorProfile:
		for _, mid := range p.Mentees {
			if m, ok := r.users[mid]; ok {
				if mp, ok := m.Mentee(); ok && mp.MentorID == u.ID {
					mp.MentorID = ""
					m.UpdatedAt = now
				}
			}
		}
		p.Mentees = []string{}
	case *entity.MenteeProfile:
		if p.MentorID == "" {
			return
		}
		if m, ok := r.users[p.MentorID]; ok {
			if pp, ok := m.Mentor(); ok {
				pp.Mentees = slices.DeleteFunc(pp.Mentees, func(id string) bool { return id == u.ID })
				m.UpdatedAt = now
			}
		}
		p.MentorID = ""
	}
}

func (r *UserRepository) activeMentor(id string) (*entity.User, error) {
	m, ok := r.users[id]
	if !ok {
		return nil, apperr.ErrMentorNotFound
	}
	if m.Role() != entity.RoleMentor {
		return nil, apperr.ErrForbidden
	}
	if !m.IsActive {
		return nil, apperr.ErrAccountDeactivated
	}
	return m, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
