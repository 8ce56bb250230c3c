package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-mentorship-tracker/internal/domain/repository"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
	tpl "github.com/oksasatya/go-mentorship-tracker/pkg/mailer/templates"
)

// Publisher enqueues email jobs (RabbitMQ in production).
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// MentorIndex keeps mentors searchable (Elasticsearch in production).
type MentorIndex interface {
	Upsert(ctx context.Context, u *entity.User) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.MentorListing, error)
}

// AvatarStorage stores profile pictures (GCS in production).
type AvatarStorage interface {
	Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Service implements account, profile and mentorship use cases.
// Publisher, MentorIndex and AvatarStorage are optional.
type Service struct {
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
	Hasher  *helpers.PasswordHasher
	Logger  *logrus.Logger
	Mail    Publisher
	Index   MentorIndex
	Avatars AvatarStorage
	Brand   tpl.Brand

	now func() time.Time
}

type Option func(*Service)

func WithPublisher(p Publisher) Option         { return func(s *Service) { s.Mail = p } }
func WithMentorIndex(i MentorIndex) Option     { return func(s *Service) { s.Index = i } }
func WithAvatarStorage(a AvatarStorage) Option { return func(s *Service) { s.Avatars = a } }
func WithBrand(b tpl.Brand) Option             { return func(s *Service) { s.Brand = b } }

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, hasher *helpers.PasswordHasher, logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	s := &Service{
		Repo:   repo,
		JWT:    jwt,
		Hasher: hasher,
		Logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile is a user together with the populated ends of its links.
type Profile struct {
	User    *entity.User
	Mentor  *entity.UserSummary
	Mentees []entity.UserSummary
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   *Profile
}

func (s *Service) issue(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		return "", time.Time{}, apperr.Internal(err)
	}
	return token, exp, nil
}

// populate resolves the mentor and mentees of u into summaries.
func (s *Service) populate(ctx context.Context, u *entity.User) (*Profile, error) {
	p := &Profile{User: u, Mentees: []entity.UserSummary{}}
	if id := u.MentorID(); id != "" {
		sums, err := s.Repo.Summaries(ctx, []string{id})
		if err != nil {
			return nil, s.internal("load mentor summary", err, u.ID)
		}
		if len(sums) == 1 {
			p.Mentor = &sums[0]
		}
	}
	if ids := u.MenteeIDs(); len(ids) > 0 {
		sums, err := s.Repo.Summaries(ctx, ids)
		if err != nil {
			return nil, s.internal("load mentee summaries", err, u.ID)
		}
		p.Mentees = sums
	}
	return p, nil
}

func (s *Service) load(ctx context.Context, id string, notFound *apperr.Error) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, notFound
		}
		return nil, s.internal("load user", err, id)
	}
	return u, nil
}

// internal logs unexpected errors; typed errors pass through untouched.
func (s *Service) internal(msg string, err error, userID string) error {
	if e := apperr.From(err); e.Kind != apperr.KindInternal {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.ErrUnavailable.WithMessage("Request timed out").Wrap(err)
	}
	helpers.LogError(s.Logger, msg, err, logrus.Fields{"user_id": userID})
	return apperr.From(err)
}
