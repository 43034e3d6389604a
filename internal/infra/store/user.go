package store

import (
	"context"
	"errors"

	"spotstay/internal/infra"
	"spotstay/internal/infra/db"
	"spotstay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserStore backs both the user directory collaborator and signup.
type UserStore struct {
	db db.DBTX
}

func NewUserStore(dbtx db.DBTX) *UserStore {
	return &UserStore{db: dbtx}
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `SELECT id, email, name, role, is_active FROM users WHERE id = $1`

	var v queries.UserView
	err := s.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to find user by ID", err)
	}

	return &v, nil
}

// FindByEmail also returns the stored password hash for credential
// checks; it never leaves the auth usecase.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	const query = `SELECT id, email, name, role, is_active, password_hash FROM users WHERE email = $1`

	var (
		v    queries.UserView
		hash string
	)
	err := s.db.QueryRow(ctx, query, email).Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.IsActive, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", wrapPgErr("failed to find user by email", err)
	}

	return &v, hash, nil
}

func (s *UserStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND is_active)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, wrapPgErr("failed to check user existence", err)
	}

	return exists, nil
}

type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

func (s *UserStore) Create(ctx context.Context, params CreateUserParams) (*queries.UserView, error) {
	const query = `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, role, is_active`

	var v queries.UserView
	err := s.db.QueryRow(ctx, query, params.Email, params.Name, params.PasswordHash, params.Role).
		Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.IsActive)
	if err != nil {
		return nil, wrapPgErr("failed to create user", err)
	}

	return &v, nil
}
