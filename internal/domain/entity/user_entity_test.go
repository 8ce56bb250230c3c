package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Mentor ")
	require.True(t, ok)
	require.Equal(t, RoleMentor, r)

	_, ok = ParseRole("admin")
	require.False(t, ok)
}

func TestCleanExpertise(t *testing.T) {
	got := CleanExpertise([]string{" Go ", "", "go", "SQL", "  "})
	require.Equal(t, []string{"Go", "SQL"}, got)
	require.Empty(t, CleanExpertise(nil))
}

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(RoleMentor, []string{"Go"})
	require.NoError(t, err)
	require.Equal(t, RoleMentor, p.Role())

	_, err = NewProfile(RoleMentor, []string{" "})
	require.ErrorIs(t, err, apperr.ErrExpertiseRequired)

	_, err = NewProfile(RoleMentee, []string{"Go"})
	require.ErrorIs(t, err, apperr.ErrMenteeExpertise)

	p, err = NewProfile(RoleMentee, nil)
	require.NoError(t, err)
	require.Equal(t, RoleMentee, p.Role())

	_, err = NewProfile(Role("admin"), nil)
	require.ErrorIs(t, err, apperr.ErrInvalidProfile)
}

func validMentor() *User {
	return &User{
		ID:       "m1",
		Email:    "alice@example.com",
		Name:     "Alice",
		Profile:  &MentorProfile{Expertise: []string{"Go"}},
		IsActive: true,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validMentor().Validate())

	u := validMentor()
	u.Email = "Alice@Example.com"
	require.ErrorIs(t, u.Validate(), apperr.ErrInvalidProfile)

	u = validMentor()
	u.Name = "A"
	require.ErrorIs(t, u.Validate(), apperr.ErrInvalidProfile)

	u = validMentor()
	u.Bio = strings.Repeat("x", BioMaxLen+1)
	require.ErrorIs(t, u.Validate(), apperr.ErrInvalidProfile)

	u = validMentor()
	u.Profile = &MentorProfile{}
	require.ErrorIs(t, u.Validate(), apperr.ErrExpertiseRequired)

	u = validMentor()
	u.Profile = &MentorProfile{Expertise: []string{"Go"}, Mentees: []string{"m1"}}
	require.ErrorIs(t, u.Validate(), apperr.ErrInvalidProfile)

	u = validMentor()
	u.Profile = &MenteeProfile{MentorID: "m1"}
	require.ErrorIs(t, u.Validate(), apperr.ErrInvalidProfile)

	u = validMentor()
	u.Profile = nil
	require.ErrorIs(t, u.Validate(), apperr.ErrInvalidProfile)
}

func TestCloneIsDeep(t *testing.T) {
	u := validMentor()
	u.Profile.(*MentorProfile).Mentees = []string{"x"}
	cp := u.Clone()
	cp.Profile.(*MentorProfile).Mentees[0] = "y"
	cp.Profile.(*MentorProfile).Expertise = append(cp.Profile.(*MentorProfile).Expertise, "SQL")
	require.Equal(t, []string{"x"}, u.MenteeIDs())
	require.Equal(t, []string{"Go"}, u.Expertise())
}

func TestRoleAccessors(t *testing.T) {
	mentee := &User{ID: "e1", Profile: &MenteeProfile{MentorID: "m1"}}
	require.Equal(t, "m1", mentee.MentorID())
	require.Nil(t, mentee.Expertise())
	require.Nil(t, mentee.MenteeIDs())
	require.Equal(t, UserSummary{ID: "e1", Role: RoleMentee}, mentee.Summary())

	_, ok := mentee.Listing()
	require.False(t, ok)
	l, ok := validMentor().Listing()
	require.True(t, ok)
	require.Equal(t, []string{"Go"}, l.Expertise)
}
