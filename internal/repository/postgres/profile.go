package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"stacklens/internal/domain"
	"stacklens/pkg/errors"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, address, avatar, username, bio, created_at, updated_at
		) VALUES (
			:id, :address, :avatar, :username, :bio, :created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, profile)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		if pqErr.Constraint == "profiles_username_key" {
			return errors.ErrUsernameTaken
		}
		return errors.ErrProfileAlreadyExists
	}
	return errors.Wrap(err, "failed to create profile")
}

func (r *ProfileRepository) FindByAddress(ctx context.Context, address string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT id, address, avatar, username, bio, created_at, updated_at FROM profiles WHERE address = $1`
	err := r.db.GetContext(ctx, &profile, query, address)
	if err == sql.ErrNoRows {
		return nil, errors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find profile by address")
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT id, address, avatar, username, bio, created_at, updated_at FROM profiles WHERE username = $1`
	err := r.db.GetContext(ctx, &profile, query, username)
	if err == sql.ErrNoRows {
		return nil, errors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find profile by username")
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles SET
			avatar = :avatar,
			username = :username,
			bio = :bio,
			updated_at = :updated_at
		WHERE address = :address
	`
	result, err := r.db.NamedExecContext(ctx, query, profile)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return errors.ErrUsernameTaken
	}
	if err != nil {
		return errors.Wrap(err, "failed to update profile")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrProfileNotFound
	}
	return nil
}
