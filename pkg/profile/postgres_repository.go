package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProfileRepository implements ProfileRepository using PostgreSQL
type PostgresProfileRepository struct {
	db *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile inserts a new profile row keyed by the identity account id
func (r *PostgresProfileRepository) CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error) {
	query := `
		INSERT INTO profiles (id, email, name, is_student, is_admin, is_tester)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, name, is_student, is_admin, is_tester, created_at
	`

	var p Profile
	err := r.db.QueryRow(ctx, query,
		params.ID,
		params.Email,
		params.Name,
		params.IsStudent,
		params.IsAdmin,
		params.IsTester,
	).Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.IsStudent,
		&p.IsAdmin,
		&p.IsTester,
		&p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Profile{}, ErrProfileExists
		}
		return Profile{}, err
	}

	return p, nil
}

// GetProfile retrieves a profile by id
func (r *PostgresProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	query := `
		SELECT id, email, name, is_student, is_admin, is_tester, created_at
		FROM profiles
		WHERE id = $1
	`

	var p Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.IsStudent,
		&p.IsAdmin,
		&p.IsTester,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}

	return p, nil
}

// DeleteProfile removes a profile row by id
func (r *PostgresProfileRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM profiles
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}
