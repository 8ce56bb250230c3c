package entity

import "strings"

// Role is fixed at registration; no operation changes it.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

func (r Role) Valid() bool { return r == RoleMentor || r == RoleMentee }

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// RoleProfile carries the fields that only exist for one role.
// It is implemented by *MentorProfile and *MenteeProfile only.
type RoleProfile interface {
	Role() Role
	clone() RoleProfile
}

// MentorProfile holds a mentor's expertise and the ids of its mentees.
// Mentees is maintained by the store; application code never writes it.
type MentorProfile struct {
	Expertise []string
	Mentees   []string
}

func (*MentorProfile) Role() Role { return RoleMentor }

func (p *MentorProfile) clone() RoleProfile {
	return &MentorProfile{
		Expertise: append([]string(nil), p.Expertise...),
		Mentees:   append([]string(nil), p.Mentees...),
	}
}

// MenteeProfile holds the optional back-reference to the mentee's mentor.
type MenteeProfile struct {
	MentorID string
}

func (*MenteeProfile) Role() Role { return RoleMentee }

func (p *MenteeProfile) clone() RoleProfile {
	cp := *p
	return &cp
}

// CleanExpertise trims every entry and drops blanks and duplicates, keeping order.
func CleanExpertise(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, e := range in {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		key := strings.ToLower(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
