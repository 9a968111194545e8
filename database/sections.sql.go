package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createSection = `-- name: CreateSection :one
INSERT INTO survey_sections (survey_id, title, sort_order, condition_question_id, condition_value, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, survey_id, title, sort_order, condition_question_id, condition_value, is_active
`

type CreateSectionParams struct {
	SurveyID            int64
	Title               string
	SortOrder           int32
	ConditionQuestionID pgtype.Int8
	ConditionValue      pgtype.Text
	IsActive            pgtype.Bool
}

func (q *Queries) CreateSection(ctx context.Context, arg CreateSectionParams) (SurveySection, error) {
	row := q.db.QueryRow(ctx, createSection,
		arg.SurveyID, arg.Title, arg.SortOrder, arg.ConditionQuestionID, arg.ConditionValue, arg.IsActive)
	var i SurveySection
	err := row.Scan(&i.ID, &i.SurveyID, &i.Title, &i.SortOrder, &i.ConditionQuestionID, &i.ConditionValue, &i.IsActive)
	return i, err
}

const getSection = `-- name: GetSection :one
SELECT id, survey_id, title, sort_order, condition_question_id, condition_value, is_active
FROM survey_sections
WHERE id = $1
`

func (q *Queries) GetSection(ctx context.Context, id int64) (SurveySection, error) {
	row := q.db.QueryRow(ctx, getSection, id)
	var i SurveySection
	err := row.Scan(&i.ID, &i.SurveyID, &i.Title, &i.SortOrder, &i.ConditionQuestionID, &i.ConditionValue, &i.IsActive)
	return i, err
}

const getSectionsBySurveyID = `-- name: GetSectionsBySurveyID :many
SELECT id, survey_id, title, sort_order, condition_question_id, condition_value, is_active
FROM survey_sections
WHERE survey_id = $1
ORDER BY sort_order
`

func (q *Queries) GetSectionsBySurveyID(ctx context.Context, surveyID int64) ([]SurveySection, error) {
	rows, err := q.db.Query(ctx, getSectionsBySurveyID, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SurveySection
	for rows.Next() {
		var i SurveySection
		if err := rows.Scan(&i.ID, &i.SurveyID, &i.Title, &i.SortOrder, &i.ConditionQuestionID, &i.ConditionValue, &i.IsActive); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateSection = `-- name: UpdateSection :one
UPDATE survey_sections
SET title                 = COALESCE($2, title),
    sort_order            = COALESCE($3, sort_order),
    condition_question_id = $4,
    condition_value       = $5,
    is_active             = COALESCE($6, is_active)
WHERE id = $1
RETURNING id, survey_id, title, sort_order, condition_question_id, condition_value, is_active
`

type UpdateSectionParams struct {
	ID                  int64
	Title               pgtype.Text
	SortOrder           pgtype.Int4
	ConditionQuestionID pgtype.Int8
	ConditionValue      pgtype.Text
	IsActive            pgtype.Bool
}

func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) (SurveySection, error) {
	row := q.db.QueryRow(ctx, updateSection,
		arg.ID, arg.Title, arg.SortOrder, arg.ConditionQuestionID, arg.ConditionValue, arg.IsActive)
	var i SurveySection
	err := row.Scan(&i.ID, &i.SurveyID, &i.Title, &i.SortOrder, &i.ConditionQuestionID, &i.ConditionValue, &i.IsActive)
	return i, err
}

const deleteSection = `-- name: DeleteSection :exec
DELETE FROM survey_sections WHERE id = $1
`

func (q *Queries) DeleteSection(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteSection, id)
	return err
}
