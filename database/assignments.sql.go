package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createAssignment = `-- name: CreateAssignment :one
INSERT INTO assignments (survey_id, client_id, assigned_by, access_token)
VALUES ($1, $2, $3, $4)
RETURNING id, survey_id, client_id, assigned_by, access_token, status, score_total, started_at, completed_at, created_at
`

type CreateAssignmentParams struct {
	SurveyID    int64
	ClientID    pgtype.Int8
	AssignedBy  int64
	AccessToken string
}

func (q *Queries) CreateAssignment(ctx context.Context, arg CreateAssignmentParams) (Assignment, error) {
	row := q.db.QueryRow(ctx, createAssignment, arg.SurveyID, arg.ClientID, arg.AssignedBy, arg.AccessToken)
	var i Assignment
	err := row.Scan(&i.ID, &i.SurveyID, &i.ClientID, &i.AssignedBy, &i.AccessToken,
		&i.Status, &i.ScoreTotal, &i.StartedAt, &i.CompletedAt, &i.CreatedAt)
	return i, err
}

const getAssignment = `-- name: GetAssignment :one
SELECT id, survey_id, client_id, assigned_by, access_token, status, score_total, started_at, completed_at, created_at
FROM assignments
WHERE id = $1
`

func (q *Queries) GetAssignment(ctx context.Context, id int64) (Assignment, error) {
	row := q.db.QueryRow(ctx, getAssignment, id)
	var i Assignment
	err := row.Scan(&i.ID, &i.SurveyID, &i.ClientID, &i.AssignedBy, &i.AccessToken,
		&i.Status, &i.ScoreTotal, &i.StartedAt, &i.CompletedAt, &i.CreatedAt)
	return i, err
}

const getAssignmentByToken = `-- name: GetAssignmentByToken :one
SELECT id, survey_id, client_id, assigned_by, access_token, status, score_total, started_at, completed_at, created_at
FROM assignments
WHERE access_token = $1
`

func (q *Queries) GetAssignmentByToken(ctx context.Context, accessToken string) (Assignment, error) {
	row := q.db.QueryRow(ctx, getAssignmentByToken, accessToken)
	var i Assignment
	err := row.Scan(&i.ID, &i.SurveyID, &i.ClientID, &i.AssignedBy, &i.AccessToken,
		&i.Status, &i.ScoreTotal, &i.StartedAt, &i.CompletedAt, &i.CreatedAt)
	return i, err
}

const listAssignmentsBySurveyID = `-- name: ListAssignmentsBySurveyID :many
SELECT id, survey_id, client_id, assigned_by, access_token, status, score_total, started_at, completed_at, created_at
FROM assignments
WHERE survey_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListAssignmentsBySurveyID(ctx context.Context, surveyID int64) ([]Assignment, error) {
	rows, err := q.db.Query(ctx, listAssignmentsBySurveyID, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Assignment
	for rows.Next() {
		var i Assignment
		if err := rows.Scan(&i.ID, &i.SurveyID, &i.ClientID, &i.AssignedBy, &i.AccessToken,
			&i.Status, &i.ScoreTotal, &i.StartedAt, &i.CompletedAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAssignmentsByClientID = `-- name: ListAssignmentsByClientID :many
SELECT id, survey_id, client_id, assigned_by, access_token, status, score_total, started_at, completed_at, created_at
FROM assignments
WHERE client_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListAssignmentsByClientID(ctx context.Context, clientID int64) ([]Assignment, error) {
	rows, err := q.db.Query(ctx, listAssignmentsByClientID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Assignment
	for rows.Next() {
		var i Assignment
		if err := rows.Scan(&i.ID, &i.SurveyID, &i.ClientID, &i.AssignedBy, &i.AccessToken,
			&i.Status, &i.ScoreTotal, &i.StartedAt, &i.CompletedAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const startAssignment = `-- name: StartAssignment :one
UPDATE assignments
SET status = 'in_progress', started_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING id, survey_id, client_id, assigned_by, access_token, status, score_total, started_at, completed_at, created_at
`

// StartAssignment moves a pending assignment to in_progress. Calling it on an
// assignment that already left pending matches no row.
func (q *Queries) StartAssignment(ctx context.Context, id int64) (Assignment, error) {
	row := q.db.QueryRow(ctx, startAssignment, id)
	var i Assignment
	err := row.Scan(&i.ID, &i.SurveyID, &i.ClientID, &i.AssignedBy, &i.AccessToken,
		&i.Status, &i.ScoreTotal, &i.StartedAt, &i.CompletedAt, &i.CreatedAt)
	return i, err
}

const completeAssignment = `-- name: CompleteAssignment :one
UPDATE assignments
SET status = 'completed', score_total = $2, completed_at = now()
WHERE id = $1 AND status <> 'completed'
RETURNING id, survey_id, client_id, assigned_by, access_token, status, score_total, started_at, completed_at, created_at
`

type CompleteAssignmentParams struct {
	ID         int64
	ScoreTotal pgtype.Numeric
}

func (q *Queries) CompleteAssignment(ctx context.Context, arg CompleteAssignmentParams) (Assignment, error) {
	row := q.db.QueryRow(ctx, completeAssignment, arg.ID, arg.ScoreTotal)
	var i Assignment
	err := row.Scan(&i.ID, &i.SurveyID, &i.ClientID, &i.AssignedBy, &i.AccessToken,
		&i.Status, &i.ScoreTotal, &i.StartedAt, &i.CompletedAt, &i.CreatedAt)
	return i, err
}
