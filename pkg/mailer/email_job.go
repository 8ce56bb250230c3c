package mailer

import (
	"errors"
	"fmt"

	"github.com/oksasatya/go-mentorship-tracker/pkg/mailer/templates"
)

var ErrInvalidJob = errors.New("invalid email job")

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // welcome, mentee_assigned, mentee_removed, account_deactivated
	Data     map[string]any `json:"data,omitempty"`
}

// Valid reports whether the job has a recipient and something to render or send.
func (j EmailJob) Valid() bool {
	if j.To == "" {
		return false
	}
	return j.Template != "" || (j.Subject != "" && (j.Text != "" || j.HTML != ""))
}

// Prepare resolves the subject and bodies for j, rendering its template when
// one is named. Explicit Subject/Text/HTML are used as given otherwise.
func Prepare(j EmailJob) (subject, text, html string, err error) {
	if !j.Valid() {
		return "", "", "", ErrInvalidJob
	}
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	if !templates.Known(j.Template) {
		return "", "", "", fmt.Errorf("%w: unknown template %q", ErrInvalidJob, j.Template)
	}
	subject, text, html, err = templates.Render(j.Template, j.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("render %s: %w", j.Template, err)
	}
	if j.Subject != "" {
		subject = j.Subject
	}
	return subject, text, html, nil
}
