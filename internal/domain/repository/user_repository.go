package repository

import (
	"context"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
)

// UserRepository is the credential store.
//
// Create and Update reject records that break the user invariants or the
// unique email constraint before anything is persisted. Neither of them
// touches the mentor/mentee link: LinkMentee and UnlinkMentee are the only
// writes to it, and each updates both ends as one atomic step.
// Mentor users are always returned with their Mentees populated.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update persists profile fields (name, phone, bio, avatar, expertise).
	Update(ctx context.Context, u *entity.User) error
	// Summaries returns the users with the given ids, in the same order, skipping unknown ids.
	Summaries(ctx context.Context, ids []string) ([]entity.UserSummary, error)

	// LinkMentee sets mentee.mentor = mentorID only if the mentee currently has no mentor.
	LinkMentee(ctx context.Context, mentorID, menteeID string) error
	// UnlinkMentee clears mentee.mentor only if it currently equals mentorID.
	UnlinkMentee(ctx context.Context, mentorID, menteeID string) error

	// Deactivate and Delete clear every link the user takes part in within the same transaction.
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
