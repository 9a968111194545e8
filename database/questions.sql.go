package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createQuestion = `-- name: CreateQuestion :one
INSERT INTO survey_questions (section_id, question_text, question_type, sort_order, is_required)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, section_id, question_text, question_type, sort_order, is_required
`

type CreateQuestionParams struct {
	SectionID    int64
	QuestionText string
	QuestionType QuestionType
	SortOrder    int32
	IsRequired   pgtype.Bool
}

func (q *Queries) CreateQuestion(ctx context.Context, arg CreateQuestionParams) (SurveyQuestion, error) {
	row := q.db.QueryRow(ctx, createQuestion,
		arg.SectionID, arg.QuestionText, arg.QuestionType, arg.SortOrder, arg.IsRequired)
	var i SurveyQuestion
	err := row.Scan(&i.ID, &i.SectionID, &i.QuestionText, &i.QuestionType, &i.SortOrder, &i.IsRequired)
	return i, err
}

const getQuestion = `-- name: GetQuestion :one
SELECT id, section_id, question_text, question_type, sort_order, is_required
FROM survey_questions
WHERE id = $1
`

func (q *Queries) GetQuestion(ctx context.Context, id int64) (SurveyQuestion, error) {
	row := q.db.QueryRow(ctx, getQuestion, id)
	var i SurveyQuestion
	err := row.Scan(&i.ID, &i.SectionID, &i.QuestionText, &i.QuestionType, &i.SortOrder, &i.IsRequired)
	return i, err
}

const getQuestionsBySectionID = `-- name: GetQuestionsBySectionID :many
SELECT id, section_id, question_text, question_type, sort_order, is_required
FROM survey_questions
WHERE section_id = $1
ORDER BY sort_order
`

func (q *Queries) GetQuestionsBySectionID(ctx context.Context, sectionID int64) ([]SurveyQuestion, error) {
	rows, err := q.db.Query(ctx, getQuestionsBySectionID, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SurveyQuestion
	for rows.Next() {
		var i SurveyQuestion
		if err := rows.Scan(&i.ID, &i.SectionID, &i.QuestionText, &i.QuestionType, &i.SortOrder, &i.IsRequired); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getQuestionsBySurveyID = `-- name: GetQuestionsBySurveyID :many
SELECT q.id, q.section_id, q.question_text, q.question_type, q.sort_order, q.is_required
FROM survey_questions q
JOIN survey_sections s ON s.id = q.section_id
WHERE s.survey_id = $1
ORDER BY s.sort_order, q.sort_order
`

func (q *Queries) GetQuestionsBySurveyID(ctx context.Context, surveyID int64) ([]SurveyQuestion, error) {
	rows, err := q.db.Query(ctx, getQuestionsBySurveyID, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SurveyQuestion
	for rows.Next() {
		var i SurveyQuestion
		if err := rows.Scan(&i.ID, &i.SectionID, &i.QuestionText, &i.QuestionType, &i.SortOrder, &i.IsRequired); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateQuestion = `-- name: UpdateQuestion :one
UPDATE survey_questions
SET question_text = COALESCE($2, question_text),
    question_type = COALESCE($3, question_type),
    sort_order    = COALESCE($4, sort_order),
    is_required   = COALESCE($5, is_required)
WHERE id = $1
RETURNING id, section_id, question_text, question_type, sort_order, is_required
`

type UpdateQuestionParams struct {
	ID           int64
	QuestionText pgtype.Text
	QuestionType pgtype.Text
	SortOrder    pgtype.Int4
	IsRequired   pgtype.Bool
}

func (q *Queries) UpdateQuestion(ctx context.Context, arg UpdateQuestionParams) (SurveyQuestion, error) {
	row := q.db.QueryRow(ctx, updateQuestion,
		arg.ID, arg.QuestionText, arg.QuestionType, arg.SortOrder, arg.IsRequired)
	var i SurveyQuestion
	err := row.Scan(&i.ID, &i.SectionID, &i.QuestionText, &i.QuestionType, &i.SortOrder, &i.IsRequired)
	return i, err
}

const deleteQuestion = `-- name: DeleteQuestion :exec
DELETE FROM survey_questions WHERE id = $1
`

func (q *Queries) DeleteQuestion(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteQuestion, id)
	return err
}
