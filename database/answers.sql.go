package database

import (
	"context"
)

const createAnswer = `-- name: CreateAnswer :one
INSERT INTO answers (assignment_id, question_id, answer_value)
VALUES ($1, $2, $3)
RETURNING id, assignment_id, question_id, answer_value, created_at
`

type CreateAnswerParams struct {
	AssignmentID int64
	QuestionID   int64
	AnswerValue  string
}

func (q *Queries) CreateAnswer(ctx context.Context, arg CreateAnswerParams) (Answer, error) {
	row := q.db.QueryRow(ctx, createAnswer, arg.AssignmentID, arg.QuestionID, arg.AnswerValue)
	var i Answer
	err := row.Scan(&i.ID, &i.AssignmentID, &i.QuestionID, &i.AnswerValue, &i.CreatedAt)
	return i, err
}

const getAnswersByAssignmentID = `-- name: GetAnswersByAssignmentID :many
SELECT id, assignment_id, question_id, answer_value, created_at
FROM answers
WHERE assignment_id = $1
ORDER BY question_id
`

func (q *Queries) GetAnswersByAssignmentID(ctx context.Context, assignmentID int64) ([]Answer, error) {
	rows, err := q.db.Query(ctx, getAnswersByAssignmentID, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Answer
	for rows.Next() {
		var i Answer
		if err := rows.Scan(&i.ID, &i.AssignmentID, &i.QuestionID, &i.AnswerValue, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
