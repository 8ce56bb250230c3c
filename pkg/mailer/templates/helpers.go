package templates

import (
	"strings"
	"time"
)

// Brand carries the product details every email shows.
type Brand struct {
	AppName     string
	CompanyName string
	AppURL      string
	SupportURL  string
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithRole(role string) Option { return func(d *EmailData) { d.Role = role } }

// WithCounterpart names the other side of a mentorship link.
func WithCounterpart(name, email string) Option {
	return func(d *EmailData) {
		d.OtherName = strings.TrimSpace(name)
		d.OtherEmail = email
	}
}

func WithExpertise(items []string) Option {
	return func(d *EmailData) { d.Expertise = append([]string(nil), items...) }
}

// NewBaseEmailData fills the shared fields from brand, then applies opts.
func NewBaseEmailData(brand Brand, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		Type:        typ,
		AppName:     brand.AppName,
		CompanyName: brand.CompanyName,
		AppURL:      brand.AppURL,
		SupportURL:  brand.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(brand Brand, name, email, role string, opts ...Option) map[string]any {
	opts = append([]Option{WithRole(role)}, opts...)
	return ToMap(NewBaseEmailData(brand, Welcome, name, email, opts...))
}

// NewMenteeAssignedData is sent to the mentee; the counterpart is the mentor.
func NewMenteeAssignedData(brand Brand, menteeName, menteeEmail, mentorName, mentorEmail string, opts ...Option) map[string]any {
	opts = append([]Option{WithCounterpart(mentorName, mentorEmail)}, opts...)
	return ToMap(NewBaseEmailData(brand, MenteeAssigned, menteeName, menteeEmail, opts...))
}

func NewMenteeRemovedData(brand Brand, menteeName, menteeEmail, mentorName, mentorEmail string, opts ...Option) map[string]any {
	opts = append([]Option{WithCounterpart(mentorName, mentorEmail)}, opts...)
	return ToMap(NewBaseEmailData(brand, MenteeRemoved, menteeName, menteeEmail, opts...))
}

func NewAccountDeactivatedData(brand Brand, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(brand, AccountDeactivated, name, email, opts...))
}
