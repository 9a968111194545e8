package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createSurvey = `-- name: CreateSurvey :one
INSERT INTO surveys (name, anonymous, created_by)
VALUES ($1, $2, $3)
RETURNING id, name, status, anonymous, created_by, created_at, updated_at
`

type CreateSurveyParams struct {
	Name      string
	Anonymous bool
	CreatedBy int64
}

func (q *Queries) CreateSurvey(ctx context.Context, arg CreateSurveyParams) (Survey, error) {
	row := q.db.QueryRow(ctx, createSurvey, arg.Name, arg.Anonymous, arg.CreatedBy)
	var i Survey
	err := row.Scan(&i.ID, &i.Name, &i.Status, &i.Anonymous, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getSurvey = `-- name: GetSurvey :one
SELECT id, name, status, anonymous, created_by, created_at, updated_at
FROM surveys
WHERE id = $1
`

func (q *Queries) GetSurvey(ctx context.Context, id int64) (Survey, error) {
	row := q.db.QueryRow(ctx, getSurvey, id)
	var i Survey
	err := row.Scan(&i.ID, &i.Name, &i.Status, &i.Anonymous, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listSurveys = `-- name: ListSurveys :many
SELECT id, name, status, anonymous, created_by, created_at, updated_at
FROM surveys
WHERE ($1::text IS NULL OR status = $1::text)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListSurveysParams struct {
	Status pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListSurveys(ctx context.Context, arg ListSurveysParams) ([]Survey, error) {
	rows, err := q.db.Query(ctx, listSurveys, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Survey
	for rows.Next() {
		var i Survey
		if err := rows.Scan(&i.ID, &i.Name, &i.Status, &i.Anonymous, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateSurvey = `-- name: UpdateSurvey :one
UPDATE surveys
SET name       = COALESCE($2, name),
    anonymous  = COALESCE($3, anonymous),
    updated_at = now()
WHERE id = $1
RETURNING id, name, status, anonymous, created_by, created_at, updated_at
`

type UpdateSurveyParams struct {
	ID        int64
	Name      pgtype.Text
	Anonymous pgtype.Bool
}

func (q *Queries) UpdateSurvey(ctx context.Context, arg UpdateSurveyParams) (Survey, error) {
	row := q.db.QueryRow(ctx, updateSurvey, arg.ID, arg.Name, arg.Anonymous)
	var i Survey
	err := row.Scan(&i.ID, &i.Name, &i.Status, &i.Anonymous, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateSurveyStatus = `-- name: UpdateSurveyStatus :one
UPDATE surveys
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, name, status, anonymous, created_by, created_at, updated_at
`

type UpdateSurveyStatusParams struct {
	ID     int64
	Status SurveyStatus
}

func (q *Queries) UpdateSurveyStatus(ctx context.Context, arg UpdateSurveyStatusParams) (Survey, error) {
	row := q.db.QueryRow(ctx, updateSurveyStatus, arg.ID, arg.Status)
	var i Survey
	err := row.Scan(&i.ID, &i.Name, &i.Status, &i.Anonymous, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteSurvey = `-- name: DeleteSurvey :exec
DELETE FROM surveys WHERE id = $1
`

func (q *Queries) DeleteSurvey(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteSurvey, id)
	return err
}
