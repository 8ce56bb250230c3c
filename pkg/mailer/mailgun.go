package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun delivers rendered jobs. Every message is tagged with the
// application tag plus the job's template so Mailgun analytics can split
// welcome mail from relationship notices.
type Mailgun struct {
	Sender string
	Tag    string
	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Sender: sender, Tag: "mentorship", client: mg.NewMailgun(domain, apiKey)}
}

// Send returns the Mailgun message id.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string, tags ...string) (string, error) {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if err := msg.AddTag(messageTags(m.Tag, tags)...); err != nil {
		return "", err
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, id, err := m.client.Send(c, msg)
	return id, err
}

func messageTags(base string, extra []string) []string {
	out := make([]string, 0, len(extra)+1)
	if base != "" {
		out = append(out, base)
	}
	for _, t := range extra {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
