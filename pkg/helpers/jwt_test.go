package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTIssueVerify(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "mentorship")
	tok, exp, err := m.Issue("user-1")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	uid, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, "mentorship")
	past := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return past }
	tok, _, err := m.Issue("user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "mentorship")
	tok, _, err := m.Issue("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour, "mentorship").Verify(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewJWTManager("secret", time.Hour, "someone-else").Verify(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Verify("not.a.token")
	require.ErrorIs(t, err, ErrTokenInvalid)

	claims := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "mentorship",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(hs384)
	require.ErrorIs(t, err, ErrTokenInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(none)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
