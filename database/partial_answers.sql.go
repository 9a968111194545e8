package database

import (
	"context"
)

const upsertPartialAnswer = `-- name: UpsertPartialAnswer :one
INSERT INTO partial_answers (assignment_id, question_id, encrypted_value)
VALUES ($1, $2, $3)
ON CONFLICT (assignment_id, question_id)
DO UPDATE SET encrypted_value = EXCLUDED.encrypted_value, updated_at = now()
RETURNING id, assignment_id, question_id, encrypted_value, updated_at
`

type UpsertPartialAnswerParams struct {
	AssignmentID   int64
	QuestionID     int64
	EncryptedValue []byte
}

func (q *Queries) UpsertPartialAnswer(ctx context.Context, arg UpsertPartialAnswerParams) (PartialAnswer, error) {
	row := q.db.QueryRow(ctx, upsertPartialAnswer, arg.AssignmentID, arg.QuestionID, arg.EncryptedValue)
	var i PartialAnswer
	err := row.Scan(&i.ID, &i.AssignmentID, &i.QuestionID, &i.EncryptedValue, &i.UpdatedAt)
	return i, err
}

const getPartialAnswersByAssignmentID = `-- name: GetPartialAnswersByAssignmentID :many
SELECT id, assignment_id, question_id, encrypted_value, updated_at
FROM partial_answers
WHERE assignment_id = $1
`

func (q *Queries) GetPartialAnswersByAssignmentID(ctx context.Context, assignmentID int64) ([]PartialAnswer, error) {
	rows, err := q.db.Query(ctx, getPartialAnswersByAssignmentID, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PartialAnswer
	for rows.Next() {
		var i PartialAnswer
		if err := rows.Scan(&i.ID, &i.AssignmentID, &i.QuestionID, &i.EncryptedValue, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deletePartialAnswer = `-- name: DeletePartialAnswer :exec
DELETE FROM partial_answers
WHERE assignment_id = $1 AND question_id = $2
`

type DeletePartialAnswerParams struct {
	AssignmentID int64
	QuestionID   int64
}

func (q *Queries) DeletePartialAnswer(ctx context.Context, arg DeletePartialAnswerParams) error {
	_, err := q.db.Exec(ctx, deletePartialAnswer, arg.AssignmentID, arg.QuestionID)
	return err
}

const deletePartialAnswersByQuestionIDs = `-- name: DeletePartialAnswersByQuestionIDs :exec
DELETE FROM partial_answers
WHERE assignment_id = $1 AND question_id = ANY($2::bigint[])
`

type DeletePartialAnswersByQuestionIDsParams struct {
	AssignmentID int64
	QuestionIds  []int64
}

func (q *Queries) DeletePartialAnswersByQuestionIDs(ctx context.Context, arg DeletePartialAnswersByQuestionIDsParams) error {
	_, err := q.db.Exec(ctx, deletePartialAnswersByQuestionIDs, arg.AssignmentID, arg.QuestionIds)
	return err
}

const deletePartialAnswersByAssignmentID = `-- name: DeletePartialAnswersByAssignmentID :exec
DELETE FROM partial_answers
WHERE assignment_id = $1
`

func (q *Queries) DeletePartialAnswersByAssignmentID(ctx context.Context, assignmentID int64) error {
	_, err := q.db.Exec(ctx, deletePartialAnswersByAssignmentID, assignmentID)
	return err
}
