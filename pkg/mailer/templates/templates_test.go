package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var brand = Brand{AppName: "Mentore", CompanyName: "Mentore Inc", AppURL: "https://mentore.test"}

func TestRenderWelcomeMentor(t *testing.T) {
	data := NewWelcomeData(brand, "Alice", "alice@example.com", "mentor",
		WithExpertise([]string{"Go", "SQL"}),
		WithTime(time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)),
	)
	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	require.Equal(t, "Welcome to Mentore, Alice", subject)
	require.Contains(t, text, "for Go, SQL")
	require.Contains(t, text, "Sign in: https://mentore.test")
	require.Contains(t, html, "<!DOCTYPE html>")
	require.Contains(t, html, "Mentore Inc")
}

func TestRenderMenteeAssignedEscapesHTML(t *testing.T) {
	data := NewMenteeAssignedData(brand, "Bob", "bob@example.com", "<Alice>", "alice@example.com")
	subject, _, html, err := Render(MenteeAssigned, data)
	require.NoError(t, err)
	require.Equal(t, "<Alice> is now your mentor", subject)
	require.Contains(t, html, "&lt;Alice&gt;")
	require.Contains(t, html, "mailto:alice@example.com")
}

func TestRenderRemovedAndDeactivated(t *testing.T) {
	subject, _, _, err := Render(MenteeRemoved, NewMenteeRemovedData(brand, "Bob", "bob@example.com", "Alice", "alice@example.com"))
	require.NoError(t, err)
	require.Equal(t, "Your mentorship with Alice has ended", subject)

	subject, _, _, err = Render(AccountDeactivated, NewAccountDeactivatedData(Brand{}, "Bob", "bob@example.com"))
	require.NoError(t, err)
	require.Equal(t, "Your Mentorship account was deactivated", subject)
}

func TestRenderUnknown(t *testing.T) {
	_, _, _, err := Render("universal", map[string]any{})
	require.Error(t, err)
	require.False(t, Known("universal"))
}
