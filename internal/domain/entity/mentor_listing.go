package entity

// MentorListing is the searchable public view of an active mentor.
type MentorListing struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Expertise []string `json:"expertise"`
}

// Listing returns the mentor listing for u; ok is false for mentees.
func (u *User) Listing() (MentorListing, bool) {
	p, ok := u.Mentor()
	if !ok {
		return MentorListing{}, false
	}
	return MentorListing{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Expertise: append([]string(nil), p.Expertise...),
	}, true
}
