package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type Store interface {
	CreateUser(ctx context.Context, body *CreateUserBody) (database.User, error)
	FindUserByEmail(ctx context.Context, email string) (database.User, error)
	FindUserByID(ctx context.Context, id int64) (database.User, error)
	FindUserWithRefreshToken(ctx context.Context, refreshToken string) (database.User, error)
	UpdateRefreshToken(ctx context.Context, id int64, refreshToken string) error
	DeleteRefreshToken(ctx context.Context, refreshToken string) error
	UpdatePassword(ctx context.Context, id int64, password string) error
}

type Repository struct {
	queries *database.Queries
}

func NewUserStore(queries *database.Queries) *Repository {

	return &Repository{queries: queries}
}

const UniqueViolation = "23505"

func (r *Repository) CreateUser(ctx context.Context, body *CreateUserBody) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := r.queries.CreateUser(ctx, database.CreateUserParams{
		Email:     body.Email,
		Password:  pgtype.Text{String: body.Password, Valid: len(body.Password) > 0},
		FirstName: pgtype.Text{String: body.FirstName, Valid: len(body.FirstName) > 0},
		LastName:  pgtype.Text{String: body.LastName, Valid: len(body.LastName) > 0},
		Role:      body.Role,
	})

	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolation {
			return database.User{}, custom_errors.ErrConflict
		}
		return database.User{}, fmt.Errorf("error creating user: %v", err)
	}

	return data, nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.User{}, custom_errors.ErrNotFound
		}
		return database.User{}, fmt.Errorf("error finding user: %v", err)
	}

	return user, nil
}

func (r *Repository) FindUserByID(ctx context.Context, id int64) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.User{}, custom_errors.ErrNotFound
		}
		return database.User{}, fmt.Errorf("error finding user: %v", err)
	}

	return user, nil
}

func (r *Repository) FindUserWithRefreshToken(ctx context.Context, refreshToken string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.GetUserByRefreshToken(ctx, pgtype.Text{String: refreshToken, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.User{}, custom_errors.ErrNotFound
		}
		return database.User{}, fmt.Errorf("error finding user by refresh token: %v", err)
	}

	return user, nil
}

func (r *Repository) UpdateRefreshToken(ctx context.Context, id int64, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.UpdateRefreshToken(ctx, database.UpdateRefreshTokenParams{
		ID:           id,
		RefreshToken: pgtype.Text{String: refreshToken, Valid: len(refreshToken) > 0},
	})
	if err != nil {
		return fmt.Errorf("error updating refresh token: %v", err)
	}

	return nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeleteRefreshToken(ctx, pgtype.Text{String: refreshToken, Valid: true})
	if err != nil {
		return fmt.Errorf("error deleting refresh token: %v", err)
	}

	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id int64, password string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{
		ID:       id,
		Password: pgtype.Text{String: password, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("error updating password: %v", err)
	}

	return nil
}
