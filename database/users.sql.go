package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (email, password, first_name, last_name, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, password, first_name, last_name, role, refresh_token, created_at, updated_at
`

type CreateUserParams struct {
	Email     string
	Password  pgtype.Text
	FirstName pgtype.Text
	LastName  pgtype.Text
	Role      string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Email, arg.Password, arg.FirstName, arg.LastName, arg.Role)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Password, &i.FirstName, &i.LastName, &i.Role,
		&i.RefreshToken, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, password, first_name, last_name, role, refresh_token, created_at, updated_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Password, &i.FirstName, &i.LastName, &i.Role,
		&i.RefreshToken, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, password, first_name, last_name, role, refresh_token, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Password, &i.FirstName, &i.LastName, &i.Role,
		&i.RefreshToken, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getUserByRefreshToken = `-- name: GetUserByRefreshToken :one
SELECT id, email, password, first_name, last_name, role, refresh_token, created_at, updated_at
FROM users
WHERE refresh_token = $1
`

func (q *Queries) GetUserByRefreshToken(ctx context.Context, refreshToken pgtype.Text) (User, error) {
	row := q.db.QueryRow(ctx, getUserByRefreshToken, refreshToken)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Password, &i.FirstName, &i.LastName, &i.Role,
		&i.RefreshToken, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateUserPassword = `-- name: UpdateUserPassword :exec
UPDATE users
SET password = $2, updated_at = now()
WHERE id = $1
`

type UpdateUserPasswordParams struct {
	ID       int64
	Password pgtype.Text
}

func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.Exec(ctx, updateUserPassword, arg.ID, arg.Password)
	return err
}

const updateRefreshToken = `-- name: UpdateRefreshToken :exec
UPDATE users
SET refresh_token = $2, updated_at = now()
WHERE id = $1
`

type UpdateRefreshTokenParams struct {
	ID           int64
	RefreshToken pgtype.Text
}

func (q *Queries) UpdateRefreshToken(ctx context.Context, arg UpdateRefreshTokenParams) error {
	_, err := q.db.Exec(ctx, updateRefreshToken, arg.ID, arg.RefreshToken)
	return err
}

const deleteRefreshToken = `-- name: DeleteRefreshToken :exec
UPDATE users
SET refresh_token = NULL, updated_at = now()
WHERE refresh_token = $1
`

func (q *Queries) DeleteRefreshToken(ctx context.Context, refreshToken pgtype.Text) error {
	_, err := q.db.Exec(ctx, deleteRefreshToken, refreshToken)
	return err
}
