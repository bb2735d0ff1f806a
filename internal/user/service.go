// Package user implements registration, login and profile lookup.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/model"
)

// Service encapsulates user account logic.
type Service struct {
	pool *pgxpool.Pool
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// RegisterInput carries a new account request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries a credentials check.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return nil, &model.ValidationError{Msg: "username is required"}
	case strings.TrimSpace(in.Email) == "":
		return nil, &model.ValidationError{Msg: "email is required"}
	case len(in.Password) < 8:
		return nil, &model.ValidationError{Msg: "password must be at least 8 characters"}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var u model.User
	err = s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, email, created_at`,
		in.Username, in.Email, hash,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, &model.ValidationError{Msg: "username or email already taken"}
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return &u, nil
}

// Login verifies the credentials and returns the account.
func (s *Service) Login(ctx context.Context, in LoginInput) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE username = $1`,
		in.Username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, model.ErrUnauthorized
	}

	if !auth.CheckPassword(in.Password, u.PasswordHash) {
		return nil, model.ErrUnauthorized
	}
	u.PasswordHash = ""
	return &u, nil
}

// Get returns a user's profile by id.
func (s *Service) Get(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, model.ErrNotFound
	}
	return &u, nil
}
