package entity

// Relation is how an actor relates to the owner of a resource.
type Relation int

const (
	RelationNone Relation = iota
	RelationSelf
	RelationMentorOfMentee
	RelationMenteeOfMentor
)

func (r Relation) String() string {
	switch r {
	case RelationSelf:
		return "self"
	case RelationMentorOfMentee:
		return "mentor_of_mentee"
	case RelationMenteeOfMentor:
		return "mentee_of_mentor"
	default:
		return "none"
	}
}

// RelationTo resolves the actor's relation to ownerID. Checks run in order
// self, mentor over own mentee, mentee over own mentor; the first match wins.
func (u *User) RelationTo(ownerID string) Relation {
	if ownerID == "" {
		return RelationNone
	}
	if u.ID == ownerID {
		return RelationSelf
	}
	if u.HasMentee(ownerID) {
		return RelationMentorOfMentee
	}
	if id := u.MentorID(); id != "" && id == ownerID {
		return RelationMenteeOfMentor
	}
	return RelationNone
}

// CanAccess reports whether the actor may act on a resource owned by ownerID.
func (u *User) CanAccess(ownerID string) bool {
	return u.RelationTo(ownerID) != RelationNone
}
