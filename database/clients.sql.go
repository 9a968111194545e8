package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createClient = `-- name: CreateClient :one
INSERT INTO clients (first_name, last_name, file_number, created_by)
VALUES ($1, $2, $3, $4)
RETURNING id, first_name, last_name, file_number, status, created_by, created_at, updated_at
`

type CreateClientParams struct {
	FirstName  string
	LastName   string
	FileNumber pgtype.Text
	CreatedBy  int64
}

func (q *Queries) CreateClient(ctx context.Context, arg CreateClientParams) (Client, error) {
	row := q.db.QueryRow(ctx, createClient, arg.FirstName, arg.LastName, arg.FileNumber, arg.CreatedBy)
	var i Client
	err := row.Scan(&i.ID, &i.FirstName, &i.LastName, &i.FileNumber, &i.Status,
		&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getClient = `-- name: GetClient :one
SELECT id, first_name, last_name, file_number, status, created_by, created_at, updated_at
FROM clients
WHERE id = $1
`

func (q *Queries) GetClient(ctx context.Context, id int64) (Client, error) {
	row := q.db.QueryRow(ctx, getClient, id)
	var i Client
	err := row.Scan(&i.ID, &i.FirstName, &i.LastName, &i.FileNumber, &i.Status,
		&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listClients = `-- name: ListClients :many
SELECT id, first_name, last_name, file_number, status, created_by, created_at, updated_at
FROM clients
WHERE ($1::text IS NULL OR status = $1::text)
ORDER BY last_name, first_name
LIMIT $2 OFFSET $3
`

type ListClientsParams struct {
	Status pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListClients(ctx context.Context, arg ListClientsParams) ([]Client, error) {
	rows, err := q.db.Query(ctx, listClients, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Client
	for rows.Next() {
		var i Client
		if err := rows.Scan(&i.ID, &i.FirstName, &i.LastName, &i.FileNumber, &i.Status,
			&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateClient = `-- name: UpdateClient :one
UPDATE clients
SET first_name  = COALESCE($2, first_name),
    last_name   = COALESCE($3, last_name),
    file_number = COALESCE($4, file_number),
    status      = COALESCE($5, status),
    updated_at  = now()
WHERE id = $1
RETURNING id, first_name, last_name, file_number, status, created_by, created_at, updated_at
`

type UpdateClientParams struct {
	ID         int64
	FirstName  pgtype.Text
	LastName   pgtype.Text
	FileNumber pgtype.Text
	Status     pgtype.Text
}

func (q *Queries) UpdateClient(ctx context.Context, arg UpdateClientParams) (Client, error) {
	row := q.db.QueryRow(ctx, updateClient, arg.ID, arg.FirstName, arg.LastName, arg.FileNumber, arg.Status)
	var i Client
	err := row.Scan(&i.ID, &i.FirstName, &i.LastName, &i.FileNumber, &i.Status,
		&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}
