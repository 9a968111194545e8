package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createQuestionOption = `-- name: CreateQuestionOption :one
INSERT INTO question_options (question_id, option_value, option_label, score, sort_order)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, question_id, option_value, option_label, score, sort_order
`

type CreateQuestionOptionParams struct {
	QuestionID  int64
	OptionValue string
	OptionLabel string
	Score       pgtype.Numeric
	SortOrder   int32
}

func (q *Queries) CreateQuestionOption(ctx context.Context, arg CreateQuestionOptionParams) (QuestionOption, error) {
	row := q.db.QueryRow(ctx, createQuestionOption,
		arg.QuestionID, arg.OptionValue, arg.OptionLabel, arg.Score, arg.SortOrder)
	var i QuestionOption
	err := row.Scan(&i.ID, &i.QuestionID, &i.OptionValue, &i.OptionLabel, &i.Score, &i.SortOrder)
	return i, err
}

const getOptionsByQuestionID = `-- name: GetOptionsByQuestionID :many
SELECT id, question_id, option_value, option_label, score, sort_order
FROM question_options
WHERE question_id = $1
ORDER BY sort_order
`

func (q *Queries) GetOptionsByQuestionID(ctx context.Context, questionID int64) ([]QuestionOption, error) {
	rows, err := q.db.Query(ctx, getOptionsByQuestionID, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []QuestionOption
	for rows.Next() {
		var i QuestionOption
		if err := rows.Scan(&i.ID, &i.QuestionID, &i.OptionValue, &i.OptionLabel, &i.Score, &i.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getOptionsBySurveyID = `-- name: GetOptionsBySurveyID :many
SELECT o.id, o.question_id, o.option_value, o.option_label, o.score, o.sort_order
FROM question_options o
JOIN survey_questions q ON q.id = o.question_id
JOIN survey_sections s ON s.id = q.section_id
WHERE s.survey_id = $1
ORDER BY q.id, o.sort_order
`

func (q *Queries) GetOptionsBySurveyID(ctx context.Context, surveyID int64) ([]QuestionOption, error) {
	rows, err := q.db.Query(ctx, getOptionsBySurveyID, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []QuestionOption
	for rows.Next() {
		var i QuestionOption
		if err := rows.Scan(&i.ID, &i.QuestionID, &i.OptionValue, &i.OptionLabel, &i.Score, &i.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateQuestionOption = `-- name: UpdateQuestionOption :one
UPDATE question_options
SET option_value = COALESCE($2, option_value),
    option_label = COALESCE($3, option_label),
    score        = COALESCE($4, score),
    sort_order   = COALESCE($5, sort_order)
WHERE id = $1
RETURNING id, question_id, option_value, option_label, score, sort_order
`

type UpdateQuestionOptionParams struct {
	ID          int64
	OptionValue pgtype.Text
	OptionLabel pgtype.Text
	Score       pgtype.Numeric
	SortOrder   pgtype.Int4
}

func (q *Queries) UpdateQuestionOption(ctx context.Context, arg UpdateQuestionOptionParams) (QuestionOption, error) {
	row := q.db.QueryRow(ctx, updateQuestionOption,
		arg.ID, arg.OptionValue, arg.OptionLabel, arg.Score, arg.SortOrder)
	var i QuestionOption
	err := row.Scan(&i.ID, &i.QuestionID, &i.OptionValue, &i.OptionLabel, &i.Score, &i.SortOrder)
	return i, err
}

const deleteQuestionOption = `-- name: DeleteQuestionOption :exec
DELETE FROM question_options WHERE id = $1
`

func (q *Queries) DeleteQuestionOption(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteQuestionOption, id)
	return err
}
