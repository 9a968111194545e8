package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createOTP = `-- name: CreateOTP :exec
INSERT INTO otps (user_id, code, domain, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, domain)
DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
`

type CreateOTPParams struct {
	UserID    int64
	Code      string
	Domain    pgtype.Text
	ExpiresAt pgtype.Timestamp
}

func (q *Queries) CreateOTP(ctx context.Context, arg CreateOTPParams) error {
	_, err := q.db.Exec(ctx, createOTP, arg.UserID, arg.Code, arg.Domain, arg.ExpiresAt)
	return err
}

const getOTP = `-- name: GetOTP :one
SELECT code
FROM otps
WHERE user_id = $1 AND domain = $2 AND expires_at > now()
`

type GetOTPParams struct {
	UserID int64
	Domain pgtype.Text
}

func (q *Queries) GetOTP(ctx context.Context, arg GetOTPParams) (string, error) {
	row := q.db.QueryRow(ctx, getOTP, arg.UserID, arg.Domain)
	var code string
	err := row.Scan(&code)
	return code, err
}

const deleteOTP = `-- name: DeleteOTP :exec
DELETE FROM otps
WHERE user_id = $1 AND domain = $2
`

type DeleteOTPParams struct {
	UserID int64
	Domain pgtype.Text
}

func (q *Queries) DeleteOTP(ctx context.Context, arg DeleteOTPParams) error {
	_, err := q.db.Exec(ctx, deleteOTP, arg.UserID, arg.Domain)
	return err
}
