package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/memory"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
	"github.com/oksasatya/go-mentorship-tracker/pkg/mailer"
	tpl "github.com/oksasatya/go-mentorship-tracker/pkg/mailer/templates"
)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

func (f *fakePublisher) templates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j.Template)
	}
	return out
}

type fakeIndex struct {
	docs      map[string]entity.MentorListing
	searchErr error
}

func (f *fakeIndex) Upsert(_ context.Context, u *entity.User) error {
	if l, ok := u.Listing(); ok && u.IsActive {
		f.docs[u.ID] = l
		return nil
	}
	delete(f.docs, u.ID)
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _ int) ([]entity.MentorListing, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := make([]entity.MentorListing, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

type fakeAvatars struct {
	uploads []string
	deleted []string
}

func (f *fakeAvatars) Upload(_ context.Context, userID, filename, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	url := "https://cdn.test/" + userID + "/" + filename
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeAvatars) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type harness struct {
	svc     *Service
	repo    *memory.UserRepository
	pub     *fakePublisher
	index   *fakeIndex
	avatars *fakeAvatars
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:    memory.NewUserRepository(),
		pub:     &fakePublisher{},
		index:   &fakeIndex{docs: map[string]entity.MentorListing{}},
		avatars: &fakeAvatars{},
	}
	h.svc = NewService(h.repo,
		helpers.NewJWTManager("test-secret", time.Hour, "test"),
		helpers.NewPasswordHasher(bcrypt.MinCost),
		nil,
		WithPublisher(h.pub),
		WithMentorIndex(h.index),
		WithAvatarStorage(h.avatars),
		WithBrand(tpl.Brand{AppName: "Mentore"}),
	)
	return h
}

func (h *harness) signup(t *testing.T, name, email, role string, expertise ...string) *AuthResult {
	t.Helper()
	res, err := h.svc.Signup(context.Background(), SignupInput{
		Name: name, Email: email, Password: "Secret123", Role: role, Expertise: expertise,
	})
	require.NoError(t, err)
	return res
}

func TestSignupAndLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res := h.signup(t, "Alice", "Alice@Example.com", "mentor", "Go", " go ", "SQL")
	u := res.Profile.User
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, []string{"Go", "SQL"}, u.Expertise())
	require.NotEqual(t, "Secret123", u.PasswordHash)
	require.NotEmpty(t, res.Token)
	require.Contains(t, h.index.docs, u.ID)
	require.Equal(t, []string{tpl.Welcome}, h.pub.templates())

	id, err := h.svc.JWT.Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, id)

	_, err = h.svc.Signup(ctx, SignupInput{Name: "Al", Email: "alice@example.com", Password: "Secret123", Role: "mentee"})
	require.ErrorIs(t, err, apperr.ErrEmailTaken)

	login, err := h.svc.Login(ctx, "ALICE@example.com", "Secret123")
	require.NoError(t, err)
	require.Equal(t, u.ID, login.Profile.User.ID)

	_, err = h.svc.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = h.svc.Login(ctx, "nobody@example.com", "Secret123")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestSignupRoleRules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Signup(ctx, SignupInput{Name: "Alice", Email: "a@example.com", Password: "Secret123", Role: "mentor"})
	require.ErrorIs(t, err, apperr.ErrExpertiseRequired)

	_, err = h.svc.Signup(ctx, SignupInput{Name: "Bob", Email: "b@example.com", Password: "Secret123", Role: "mentee", Expertise: []string{"Go"}})
	require.ErrorIs(t, err, apperr.ErrMenteeExpertise)

	_, err = h.svc.Signup(ctx, SignupInput{Name: "Eve", Email: "e@example.com", Password: "Secret123", Role: "admin"})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestResolveActor(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.signup(t, "Bob", "bob@example.com", "mentee")

	u, err := h.svc.ResolveActor(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, res.Profile.User.ID, u.ID)

	_, err = h.svc.ResolveActor(ctx, "")
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = h.svc.ResolveActor(ctx, "garbage")
	require.ErrorIs(t, err, apperr.ErrInvalidToken)

	orphan, _, err := h.svc.JWT.Issue("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	_, err = h.svc.ResolveActor(ctx, orphan)
	require.ErrorIs(t, err, apperr.ErrUserNotFound)

	require.NoError(t, h.svc.Deactivate(ctx, u.ID))
	_, err = h.svc.ResolveActor(ctx, res.Token)
	require.ErrorIs(t, err, apperr.ErrAccountDeactivated)
	_, err = h.svc.Login(ctx, "bob@example.com", "Secret123")
	require.ErrorIs(t, err, apperr.ErrAccountDeactivated)
}

func TestAssignAndRemoveMentee(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.signup(t, "Alice", "alice@example.com", "mentor", "Go").Profile.User
	bob := h.signup(t, "Bob", "bob@example.com", "mentee").Profile.User

	p, err := h.svc.AssignMentee(ctx, alice.ID, "BOB@example.com")
	require.NoError(t, err)
	require.Len(t, p.Mentees, 1)
	require.Equal(t, entity.UserSummary{ID: bob.ID, Name: "Bob", Email: "bob@example.com", Role: entity.RoleMentee}, p.Mentees[0])

	bp, err := h.svc.Profile(ctx, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, bp.Mentor)
	require.Equal(t, alice.ID, bp.Mentor.ID)

	mentor, err := h.svc.MyMentor(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", mentor.Name)

	_, err = h.svc.AssignMentee(ctx, alice.ID, "bob@example.com")
	require.ErrorIs(t, err, apperr.ErrAlreadyAssigned)

	carol := h.signup(t, "Carol", "carol@example.com", "mentor", "SQL").Profile.User
	_, err = h.svc.AssignMentee(ctx, carol.ID, "bob@example.com")
	require.ErrorIs(t, err, apperr.ErrAlreadyAssigned)
	_, err = h.svc.RemoveMentee(ctx, carol.ID, bob.ID)
	require.ErrorIs(t, err, apperr.ErrNotOwned)

	p, err = h.svc.RemoveMentee(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Empty(t, p.Mentees)
	mentor, err = h.svc.MyMentor(ctx, bob.ID)
	require.NoError(t, err)
	require.Nil(t, mentor)

	_, err = h.svc.AssignMentee(ctx, carol.ID, "bob@example.com")
	require.NoError(t, err)

	require.Equal(t, []string{tpl.Welcome, tpl.Welcome, tpl.MenteeAssigned, tpl.Welcome, tpl.MenteeRemoved, tpl.MenteeAssigned}, h.pub.templates())
}

func TestAssignMenteeFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.signup(t, "Alice", "alice@example.com", "mentor", "Go").Profile.User
	dave := h.signup(t, "Dave", "dave@example.com", "mentor", "Rust").Profile.User
	bob := h.signup(t, "Bob", "bob@example.com", "mentee").Profile.User
	eve := h.signup(t, "Eve", "eve@example.com", "mentee").Profile.User

	_, err := h.svc.AssignMentee(ctx, alice.ID, "ghost@example.com")
	require.ErrorIs(t, err, apperr.ErrMenteeNotFound)
	require.Equal(t, "No user found with this email", apperr.From(err).Message)

	_, err = h.svc.AssignMentee(ctx, alice.ID, dave.Email)
	require.ErrorIs(t, err, apperr.ErrInvalidRole)

	_, err = h.svc.AssignMentee(ctx, bob.ID, eve.Email)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, h.svc.Deactivate(ctx, eve.ID))
	_, err = h.svc.AssignMentee(ctx, alice.ID, eve.Email)
	require.ErrorIs(t, err, apperr.ErrInactiveAccount)

	_, err = h.svc.RemoveMentee(ctx, alice.ID, "missing")
	require.ErrorIs(t, err, apperr.ErrMenteeNotFound)
}

func TestConcurrentAssignOneWinner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	m1 := h.signup(t, "Alice", "alice@example.com", "mentor", "Go").Profile.User
	m2 := h.signup(t, "Carol", "carol@example.com", "mentor", "SQL").Profile.User
	h.signup(t, "Bob", "bob@example.com", "mentee")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{m1.ID, m2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = h.svc.AssignMentee(ctx, id, "bob@example.com")
		}(i, id)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, apperr.ErrAlreadyAssigned)
	}
	require.Equal(t, 1, ok)
}

func TestOwnershipAndRoles(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.signup(t, "Alice", "alice@example.com", "mentor", "Go").Profile.User
	bob := h.signup(t, "Bob", "bob@example.com", "mentee").Profile.User
	eve := h.signup(t, "Eve", "eve@example.com", "mentee").Profile.User
	_, err := h.svc.AssignMentee(ctx, alice.ID, bob.Email)
	require.NoError(t, err)

	alice, err = h.svc.Repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	bob, err = h.svc.Repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)

	rel, err := CheckOwnership(alice, bob.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RelationMentorOfMentee, rel)
	rel, err = CheckOwnership(bob, alice.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RelationMenteeOfMentor, rel)
	_, err = CheckOwnership(alice, eve.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, RequireRole(alice, entity.RoleMentor))
	err = RequireRole(bob, entity.RoleMentor)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	require.Equal(t, "User role mentee is not authorized to access this route", apperr.From(err).Message)
}

func TestUpdateProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.signup(t, "Alice", "alice@example.com", "mentor", "Go").Profile.User
	bob := h.signup(t, "Bob", "bob@example.com", "mentee").Profile.User

	name, bio := "  Alice Cooper ", "Teaches Go"
	p, err := h.svc.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Name: &name, Bio: &bio, Expertise: []string{"Go", "Rust"}})
	require.NoError(t, err)
	require.Equal(t, "Alice Cooper", p.User.Name)
	require.Equal(t, []string{"Go", "Rust"}, p.User.Expertise())
	require.Equal(t, "Alice Cooper", h.index.docs[alice.ID].Name)

	_, err = h.svc.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Expertise: []string{" "}})
	require.ErrorIs(t, err, apperr.ErrExpertiseRequired)

	_, err = h.svc.UpdateProfile(ctx, bob.ID, UpdateProfileInput{Expertise: []string{"Go"}})
	require.ErrorIs(t, err, apperr.ErrMenteeExpertise)

	_, err = h.svc.UpdateProfile(ctx, bob.ID, UpdateProfileInput{Expertise: []string{}})
	require.NoError(t, err)

	short := "B"
	_, err = h.svc.UpdateProfile(ctx, bob.ID, UpdateProfileInput{Name: &short})
	require.ErrorIs(t, err, apperr.ErrInvalidProfile)
}

func TestUploadAvatar(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	bob := h.signup(t, "Bob", "bob@example.com", "mentee").Profile.User

	_, err := h.svc.UploadAvatar(ctx, bob.ID, "a.txt", "text/plain", bytes.NewReader([]byte("x")))
	require.ErrorIs(t, err, apperr.ErrValidation)

	p, err := h.svc.UploadAvatar(ctx, bob.ID, "a.png", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.test/"+bob.ID+"/a.png", p.User.AvatarURL)

	_, err = h.svc.UploadAvatar(ctx, bob.ID, "b.png", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	require.Equal(t, []string{"https://cdn.test/" + bob.ID + "/a.png"}, h.avatars.deleted)

	h.svc.Avatars = nil
	_, err = h.svc.UploadAvatar(ctx, bob.ID, "c.png", "image/png", bytes.NewReader(nil))
	require.ErrorIs(t, err, apperr.ErrUnavailable)
}

func TestDeactivateAndDeleteReleaseLinks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.signup(t, "Alice", "alice@example.com", "mentor", "Go").Profile.User
	bob := h.signup(t, "Bob", "bob@example.com", "mentee").Profile.User
	eve := h.signup(t, "Eve", "eve@example.com", "mentee").Profile.User
	_, err := h.svc.AssignMentee(ctx, alice.ID, bob.Email)
	require.NoError(t, err)
	_, err = h.svc.AssignMentee(ctx, alice.ID, eve.Email)
	require.NoError(t, err)

	require.NoError(t, h.svc.Delete(ctx, eve.ID))
	p, err := h.svc.Profile(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, p.Mentees, 1)

	require.NoError(t, h.svc.Deactivate(ctx, alice.ID))
	require.NotContains(t, h.index.docs, alice.ID)
	bp, err := h.svc.Profile(ctx, bob.ID)
	require.NoError(t, err)
	require.Nil(t, bp.Mentor)

	_, err = h.svc.Profile(ctx, eve.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Contains(t, h.pub.templates(), tpl.AccountDeactivated)
}

func TestSideEffectsAreBestEffort(t *testing.T) {
	h := newHarness(t)
	h.pub.err = errors.New("broker down")
	h.signup(t, "Bob", "bob@example.com", "mentee")

	h.index.searchErr = errors.New("es down")
	_, err := h.svc.SearchMentors(context.Background(), "go", 10)
	require.ErrorIs(t, err, apperr.ErrUnavailable)

	h.svc.Index = nil
	got, err := h.svc.SearchMentors(context.Background(), "go", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTimeoutMapsToUnavailable(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.svc.Login(ctx, "bob@example.com", "Secret123")
	require.ErrorIs(t, err, apperr.ErrUnavailable)
}
