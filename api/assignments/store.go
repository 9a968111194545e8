package assignments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/api/surveys"
	"github.com/casenote/casenote/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Store interface {
	CreateAssignment(ctx context.Context, params database.CreateAssignmentParams) (database.Assignment, error)
	GetAssignment(ctx context.Context, assignmentID int64) (database.Assignment, error)
	GetAssignmentByToken(ctx context.Context, accessToken string) (database.Assignment, error)
	ListAssignmentsBySurveyID(ctx context.Context, surveyID int64) ([]database.Assignment, error)
	ListAssignmentsByClientID(ctx context.Context, clientID int64) ([]database.Assignment, error)
	StartAssignment(ctx context.Context, assignmentID int64) error

	GetSurveyModel(ctx context.Context, surveyID int64) (SurveyModel, error)
	LoadPartialAnswers(ctx context.Context, assignmentID int64) (map[int64]string, error)
	UpsertPartialAnswer(ctx context.Context, assignmentID, questionID int64, value string) error
	DeletePartialAnswer(ctx context.Context, assignmentID, questionID int64) error
	DeletePartialAnswers(ctx context.Context, assignmentID int64, questionIDs []int64) error

	FinalizeAssignment(ctx context.Context, assignmentID int64, answers map[int64]string, scoreTotal decimal.Decimal) (database.Assignment, error)

	GetAssignerEmail(ctx context.Context, userID int64) (string, error)
}

type Repository struct {
	queries    *database.Queries
	transactor database.Transactor
	cipher     *database.ValueCipher
}

func NewAssignmentStore(queries *database.Queries, transactor database.Transactor, cipher *database.ValueCipher) *Repository {
	return &Repository{queries: queries, transactor: transactor, cipher: cipher}
}

func (r *Repository) CreateAssignment(ctx context.Context, params database.CreateAssignmentParams) (database.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	assignment, err := r.queries.CreateAssignment(ctx, params)
	if err != nil {
		return database.Assignment{}, fmt.Errorf("error creating assignment: %v", err)
	}

	return assignment, nil
}

func (r *Repository) GetAssignment(ctx context.Context, assignmentID int64) (database.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	assignment, err := r.queries.GetAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Assignment{}, custom_errors.ErrNotFound
		}
		return database.Assignment{}, fmt.Errorf("error getting assignment: %v", err)
	}

	return assignment, nil
}

func (r *Repository) GetAssignmentByToken(ctx context.Context, accessToken string) (database.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	assignment, err := r.queries.GetAssignmentByToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Assignment{}, custom_errors.ErrNotFound
		}
		return database.Assignment{}, fmt.Errorf("error getting assignment by token: %v", err)
	}

	return assignment, nil
}

func (r *Repository) ListAssignmentsBySurveyID(ctx context.Context, surveyID int64) ([]database.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	assignments, err := r.queries.ListAssignmentsBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %v", err)
	}

	return assignments, nil
}

func (r *Repository) ListAssignmentsByClientID(ctx context.Context, clientID int64) ([]database.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	assignments, err := r.queries.ListAssignmentsByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %v", err)
	}

	return assignments, nil
}

// StartAssignment moves a pending assignment to in_progress. Assignments that
// already left pending are left alone.
func (r *Repository) StartAssignment(ctx context.Context, assignmentID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.queries.StartAssignment(ctx, assignmentID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error starting assignment: %v", err)
	}

	return nil
}

func (r *Repository) GetSurveyModel(ctx context.Context, surveyID int64) (SurveyModel, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	survey, err := r.queries.GetSurvey(ctx, surveyID)
	if err != nil {
		return SurveyModel{}, fmt.Errorf("error getting survey: %v", err)
	}

	sections, err := r.queries.GetSectionsBySurveyID(ctx, surveyID)
	if err != nil {
		return SurveyModel{}, fmt.Errorf("error getting sections: %v", err)
	}

	questions, err := r.queries.GetQuestionsBySurveyID(ctx, surveyID)
	if err != nil {
		return SurveyModel{}, fmt.Errorf("error getting questions: %v", err)
	}

	options, err := r.queries.GetOptionsBySurveyID(ctx, surveyID)
	if err != nil {
		return SurveyModel{}, fmt.Errorf("error getting options: %v", err)
	}

	optionsByQuestion := make(map[int64][]database.QuestionOption)
	for _, option := range options {
		optionsByQuestion[option.QuestionID] = append(optionsByQuestion[option.QuestionID], option)
	}

	return SurveyModel{
		Survey:   survey,
		Sections: surveys.ConditionModel(sections, questions, options),
		Options:  optionsByQuestion,
	}, nil
}

func (r *Repository) LoadPartialAnswers(ctx context.Context, assignmentID int64) (map[int64]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.queries.GetPartialAnswersByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error getting partial answers: %v", err)
	}

	answers := make(map[int64]string, len(rows))
	for _, row := range rows {
		value, err := r.cipher.Open(row.EncryptedValue)
		if err != nil {
			return nil, fmt.Errorf("error opening partial answer %d: %v", row.ID, err)
		}
		answers[row.QuestionID] = value
	}

	return answers, nil
}

func (r *Repository) UpsertPartialAnswer(ctx context.Context, assignmentID, questionID int64, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sealed, err := r.cipher.Seal(value)
	if err != nil {
		return fmt.Errorf("error sealing partial answer: %v", err)
	}

	_, err = r.queries.UpsertPartialAnswer(ctx, database.UpsertPartialAnswerParams{
		AssignmentID:   assignmentID,
		QuestionID:     questionID,
		EncryptedValue: sealed,
	})
	if err != nil {
		return fmt.Errorf("error saving partial answer: %v", err)
	}

	return nil
}

func (r *Repository) DeletePartialAnswer(ctx context.Context, assignmentID, questionID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeletePartialAnswer(ctx, database.DeletePartialAnswerParams{
		AssignmentID: assignmentID,
		QuestionID:   questionID,
	})
	if err != nil {
		return fmt.Errorf("error deleting partial answer: %v", err)
	}

	return nil
}

func (r *Repository) DeletePartialAnswers(ctx context.Context, assignmentID int64, questionIDs []int64) error {
	if len(questionIDs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeletePartialAnswersByQuestionIDs(ctx, database.DeletePartialAnswersByQuestionIDsParams{
		AssignmentID: assignmentID,
		QuestionIds:  questionIDs,
	})
	if err != nil {
		return fmt.Errorf("error pruning partial answers: %v", err)
	}

	return nil
}

// FinalizeAssignment writes the permanent answer rows, marks the assignment
// completed with its score, and clears the partial answers in a single
// transaction. Either everything lands or nothing does.
func (r *Repository) FinalizeAssignment(ctx context.Context, assignmentID int64, answers map[int64]string, scoreTotal decimal.Decimal) (database.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	questionIDs := make([]int64, 0, len(answers))
	for questionID := range answers {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Slice(questionIDs, func(i, j int) bool { return questionIDs[i] < questionIDs[j] })

	var score pgtype.Numeric
	if err := score.Scan(scoreTotal.String()); err != nil {
		return database.Assignment{}, fmt.Errorf("error converting score: %v", err)
	}

	var completed database.Assignment
	err := r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		queries := database.QueriesFromContext(ctx, r.queries)

		for _, questionID := range questionIDs {
			_, err := queries.CreateAnswer(ctx, database.CreateAnswerParams{
				AssignmentID: assignmentID,
				QuestionID:   questionID,
				AnswerValue:  answers[questionID],
			})
			if err != nil {
				return fmt.Errorf("error creating answer: %v", err)
			}
		}

		updated, err := queries.CompleteAssignment(ctx, database.CompleteAssignmentParams{
			ID:         assignmentID,
			ScoreTotal: score,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return custom_errors.ErrAssignmentCompleted
			}
			return fmt.Errorf("error completing assignment: %v", err)
		}
		completed = updated

		if err := queries.DeletePartialAnswersByAssignmentID(ctx, assignmentID); err != nil {
			return fmt.Errorf("error clearing partial answers: %v", err)
		}

		return nil
	})
	if err != nil {
		return database.Assignment{}, err
	}

	return completed, nil
}

func (r *Repository) GetAssignerEmail(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("error getting user: %v", err)
	}

	return user.Email, nil
}
