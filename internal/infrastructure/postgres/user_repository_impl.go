package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/repository"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
)

const pgUniqueViolation = "23505"

const userColumns = `id::text, email, password_hash, name, phone, bio, avatar_url, role, expertise,
	COALESCE(mentor_id::text, ''), is_active, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.MentorID() != "" || len(u.MenteeIDs()) > 0 {
		return apperr.ErrInvalidProfile.WithMessage("New users cannot carry mentor links")
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, phone, bio, avatar_url, role, expertise, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id::text, created_at, updated_at
	`, u.Email, u.PasswordHash, u.Name, u.Phone, u.Bio, u.AvatarURL, string(u.Role()), expertiseArg(u), u.IsActive)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.load(ctx, row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, entity.NormalizeEmail(email))
	return r.load(ctx, row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET name = $2, phone = $3, bio = $4, avatar_url = $5, expertise = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, u.ID, u.Name, u.Phone, u.Bio, u.AvatarURL, expertiseArg(u))

	if err := row.Scan(&u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Summaries(ctx context.Context, ids []string) ([]entity.UserSummary, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []entity.UserSummary{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id::text, name, email, role FROM users WHERE id = ANY($1::uuid[])`, valid)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]entity.UserSummary, len(valid))
	for rows.Next() {
		var (
			s    entity.UserSummary
			role string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &role); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Role = entity.Role(role)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}

	out := make([]entity.UserSummary, 0, len(byID))
	for _, id := range valid {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// LinkMentee locks the mentor row, then sets the mentee's mentor with a
// conditional update that only matches an active, unassigned mentee. Both
// ends of the link live in the mentee row, so readers see it all or not at all.
func (r *UserRepository) LinkMentee(ctx context.Context, mentorID, menteeID string) error {
	if _, err := uuid.Parse(mentorID); err != nil {
		return apperr.ErrMentorNotFound
	}
	if _, err := uuid.Parse(menteeID); err != nil {
		return apperr.ErrMenteeNotFound
	}
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockActiveMentor(ctx, tx, mentorID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE users
			SET mentor_id = $1, mentor_assigned_at = now(), updated_at = now()
			WHERE id = $2 AND role = 'mentee' AND is_active AND mentor_id IS NULL
		`, mentorID, menteeID)
		if err != nil {
			return fmt.Errorf("link mentee: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return diagnoseLink(ctx, tx, menteeID)
		}
		return touch(ctx, tx, mentorID)
	})
}

func (r *UserRepository) UnlinkMentee(ctx context.Context, mentorID, menteeID string) error {
	if _, err := uuid.Parse(menteeID); err != nil {
		return apperr.ErrMenteeNotFound
	}
	if _, err := uuid.Parse(mentorID); err != nil {
		return apperr.ErrNotOwned
	}
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE users
			SET mentor_id = NULL, mentor_assigned_at = NULL, updated_at = now()
			WHERE id = $2 AND mentor_id = $1
		`, mentorID, menteeID)
		if err != nil {
			return fmt.Errorf("unlink mentee: %w", err)
		}
		if tag.RowsAffected() == 0 {
			var one int
			err := tx.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1`, menteeID).Scan(&one)
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.ErrMenteeNotFound
			}
			if err != nil {
				return fmt.Errorf("lookup mentee: %w", err)
			}
			return apperr.ErrNotOwned
		}
		return touch(ctx, tx, mentorID)
	})
}

func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	return r.removeUser(ctx, id, `
		UPDATE users
		SET is_active = false, mentor_id = NULL, mentor_assigned_at = NULL, updated_at = now()
		WHERE id = $1
	`)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.removeUser(ctx, id, `DELETE FROM users WHERE id = $1`)
}

// removeUser clears every link the user takes part in and then runs stmt,
// all in one transaction.
func (r *UserRepository) removeUser(ctx context.Context, id, stmt string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrNotFound
	}
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			role     string
			mentorID string
			isActive bool
		)
		err := tx.QueryRow(ctx, `
			SELECT role, COALESCE(mentor_id::text, ''), is_active FROM users WHERE id = $1 FOR UPDATE
		`, id).Scan(&role, &mentorID, &isActive)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		switch entity.Role(role) {
		case entity.RoleMentor:
			if _, err := tx.Exec(ctx, `
				UPDATE users
				SET mentor_id = NULL, mentor_assigned_at = NULL, updated_at = now()
				WHERE mentor_id = $1
			`, id); err != nil {
				return fmt.Errorf("release mentees: %w", err)
			}
		case entity.RoleMentee:
			if mentorID != "" {
				if err := touch(ctx, tx, mentorID); err != nil {
					return err
				}
			}
		}

		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("remove user: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) load(ctx context.Context, row pgx.Row) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if p, ok := u.Mentor(); ok {
		ids, err := menteeIDs(ctx, r.db, u.ID)
		if err != nil {
			return nil, err
		}
		p.Mentees = ids
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		role      string
		expertise []string
		mentorID  string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Bio, &u.AvatarURL,
		&role, &expertise, &mentorID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	switch entity.Role(role) {
	case entity.RoleMentor:
		u.Profile = &entity.MentorProfile{Expertise: expertise, Mentees: []string{}}
	case entity.RoleMentee:
		u.Profile = &entity.MenteeProfile{MentorID: mentorID}
	default:
		return nil, fmt.Errorf("unknown role %q for user %s", role, u.ID)
	}
	return &u, nil
}

func menteeIDs(ctx context.Context, q Querier, mentorID string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT id::text FROM users WHERE mentor_id = $1 ORDER BY mentor_assigned_at, id
	`, mentorID)
	if err != nil {
		return nil, fmt.Errorf("query mentees: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan mentee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mentees: %w", err)
	}
	return ids, nil
}

func lockActiveMentor(ctx context.Context, tx pgx.Tx, mentorID string) error {
	var (
		role     string
		isActive bool
	)
	err := tx.QueryRow(ctx, `SELECT role, is_active FROM users WHERE id = $1 FOR UPDATE`, mentorID).Scan(&role, &isActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrMentorNotFound
	}
	if err != nil {
		return fmt.Errorf("lock mentor: %w", err)
	}
	if entity.Role(role) != entity.RoleMentor {
		return apperr.ErrForbidden
	}
	if !isActive {
		return apperr.ErrAccountDeactivated
	}
	return nil
}

// diagnoseLink explains why the conditional update matched nothing.
func diagnoseLink(ctx context.Context, tx pgx.Tx, menteeID string) error {
	var (
		role     string
		isActive bool
		mentorID string
	)
	err := tx.QueryRow(ctx, `
		SELECT role, is_active, COALESCE(mentor_id::text, '') FROM users WHERE id = $1
	`, menteeID).Scan(&role, &isActive, &mentorID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperr.ErrMenteeNotFound
	case err != nil:
		return fmt.Errorf("lookup mentee: %w", err)
	case entity.Role(role) != entity.RoleMentee:
		return apperr.ErrInvalidRole
	case !isActive:
		return apperr.ErrInactiveAccount
	default:
		return apperr.ErrAlreadyAssigned
	}
}

func touch(ctx context.Context, q Querier, id string) error {
	if _, err := q.Exec(ctx, `UPDATE users SET updated_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("touch user: %w", err)
	}
	return nil
}

func expertiseArg(u *entity.User) []string {
	if e := u.Expertise(); e != nil {
		return e
	}
	return []string{}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)
