package surveys

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casenote/casenote/api/conditions"
	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/database"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type Store interface {
	// Survey Management
	CreateSurvey(ctx context.Context, params database.CreateSurveyParams) (database.Survey, error)
	GetSurvey(ctx context.Context, surveyID int64) (database.Survey, error)
	GetSurveyWithDetails(ctx context.Context, surveyID int64) (SurveyDetail, error)
	ListSurveys(ctx context.Context, status string, limit, offset int) ([]database.Survey, error)
	UpdateSurvey(ctx context.Context, params database.UpdateSurveyParams) (database.Survey, error)
	DeleteSurvey(ctx context.Context, surveyID int64) error

	// Lifecycle
	ActivateSurvey(ctx context.Context, surveyID int64) (database.Survey, []conditions.Violation, error)
	CloseSurvey(ctx context.Context, surveyID int64) (database.Survey, error)

	// Section Management
	CreateSection(ctx context.Context, params database.CreateSectionParams) (database.SurveySection, error)
	UpdateSection(ctx context.Context, params database.UpdateSectionParams) (database.SurveySection, error)
	DeleteSection(ctx context.Context, sectionID int64) error

	// Question Management
	CreateQuestion(ctx context.Context, params database.CreateQuestionParams) (database.SurveyQuestion, error)
	UpdateQuestion(ctx context.Context, params database.UpdateQuestionParams) (database.SurveyQuestion, error)
	DeleteQuestion(ctx context.Context, questionID int64) error

	// Question Options Management
	CreateQuestionOption(ctx context.Context, params database.CreateQuestionOptionParams) (database.QuestionOption, error)
	GetOptionsByQuestionID(ctx context.Context, questionID int64) ([]database.QuestionOption, error)
	UpdateQuestionOption(ctx context.Context, params database.UpdateQuestionOptionParams) (database.QuestionOption, error)
	DeleteQuestionOption(ctx context.Context, optionID int64) error
}

const UniqueViolationCode = "23505"

type Repository struct {
	queries *database.Queries
}

func NewSurveyStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

// ConditionModel assembles the pure evaluation model from survey rows. The
// assignments feature reuses it when computing visibility for a form.
func ConditionModel(sections []database.SurveySection, questions []database.SurveyQuestion, options []database.QuestionOption) []conditions.Section {
	optionValues := make(map[int64][]string)
	for _, option := range options {
		optionValues[option.QuestionID] = append(optionValues[option.QuestionID], option.OptionValue)
	}

	questionsBySection := make(map[int64][]conditions.Question)
	for _, question := range questions {
		questionsBySection[question.SectionID] = append(questionsBySection[question.SectionID], conditions.Question{
			ID:        question.ID,
			SectionID: question.SectionID,
			Text:      question.QuestionText,
			Type:      string(question.QuestionType),
			SortOrder: question.SortOrder,
			Required:  question.IsRequired.Bool,
			Options:   optionValues[question.ID],
		})
	}

	model := make([]conditions.Section, 0, len(sections))
	for _, section := range sections {
		model = append(model, conditions.Section{
			ID:                  section.ID,
			Title:               section.Title,
			SortOrder:           section.SortOrder,
			ConditionQuestionID: section.ConditionQuestionID.Int64,
			ConditionValue:      section.ConditionValue.String,
			Questions:           questionsBySection[section.ID],
		})
	}
	return model
}

// ==================== Survey Management ====================

func (r *Repository) CreateSurvey(ctx context.Context, params database.CreateSurveyParams) (database.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	survey, err := r.queries.CreateSurvey(ctx, params)
	if err != nil {
		return database.Survey{}, fmt.Errorf("error creating survey: %v", err)
	}

	return survey, nil
}

func (r *Repository) GetSurvey(ctx context.Context, surveyID int64) (database.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	survey, err := r.queries.GetSurvey(ctx, surveyID)
	if err != nil {
		return database.Survey{}, fmt.Errorf("error getting survey: %v", err)
	}

	return survey, nil
}

func (r *Repository) GetSurveyWithDetails(ctx context.Context, surveyID int64) (SurveyDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	survey, err := r.queries.GetSurvey(ctx, surveyID)
	if err != nil {
		return SurveyDetail{}, fmt.Errorf("error getting survey: %v", err)
	}

	sections, err := r.queries.GetSectionsBySurveyID(ctx, surveyID)
	if err != nil {
		return SurveyDetail{}, fmt.Errorf("error getting sections: %v", err)
	}

	questions, err := r.queries.GetQuestionsBySurveyID(ctx, surveyID)
	if err != nil {
		return SurveyDetail{}, fmt.Errorf("error getting questions: %v", err)
	}

	options, err := r.queries.GetOptionsBySurveyID(ctx, surveyID)
	if err != nil {
		return SurveyDetail{}, fmt.Errorf("error getting options: %v", err)
	}

	optionsByQuestion := make(map[int64][]database.QuestionOption)
	for _, option := range options {
		optionsByQuestion[option.QuestionID] = append(optionsByQuestion[option.QuestionID], option)
	}

	questionsBySection := make(map[int64][]QuestionWithOptions)
	for _, question := range questions {
		questionsBySection[question.SectionID] = append(questionsBySection[question.SectionID], QuestionWithOptions{
			Question: question,
			Options:  optionsByQuestion[question.ID],
		})
	}

	detail := SurveyDetail{Survey: survey, Sections: []SectionWithQuestions{}}
	for _, section := range sections {
		detail.Sections = append(detail.Sections, SectionWithQuestions{
			Section:   section,
			Questions: questionsBySection[section.ID],
		})
	}

	return detail, nil
}

func (r *Repository) ListSurveys(ctx context.Context, status string, limit, offset int) ([]database.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	statusParam := pgtype.Text{}
	if status != "" {
		statusParam = pgtype.Text{String: status, Valid: true}
	}

	surveys, err := r.queries.ListSurveys(ctx, database.ListSurveysParams{
		Status: statusParam,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("error listing surveys: %v", err)
	}

	return surveys, nil
}

func (r *Repository) UpdateSurvey(ctx context.Context, params database.UpdateSurveyParams) (database.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	survey, err := r.queries.UpdateSurvey(ctx, params)
	if err != nil {
		return database.Survey{}, fmt.Errorf("error updating survey: %v", err)
	}

	return survey, nil
}

func (r *Repository) DeleteSurvey(ctx context.Context, surveyID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeleteSurvey(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("error deleting survey: %v", err)
	}

	return nil
}

// ==================== Lifecycle ====================

// ActivateSurvey runs the structural condition checks and, only when every
// section passes, moves the survey from draft to active. Violations are
// returned all at once so the caller can fix them together; the survey stays
// in draft while any exist.
func (r *Repository) ActivateSurvey(ctx context.Context, surveyID int64) (database.Survey, []conditions.Violation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	survey, err := r.queries.GetSurvey(ctx, surveyID)
	if err != nil {
		return database.Survey{}, nil, fmt.Errorf("error getting survey: %v", err)
	}

	if survey.Status != database.SurveyStatusDraft {
		return database.Survey{}, nil, custom_errors.ErrSurveyNotDraft
	}

	sections, err := r.queries.GetSectionsBySurveyID(ctx, surveyID)
	if err != nil {
		return database.Survey{}, nil, fmt.Errorf("error getting sections: %v", err)
	}

	questions, err := r.queries.GetQuestionsBySurveyID(ctx, surveyID)
	if err != nil {
		return database.Survey{}, nil, fmt.Errorf("error getting questions: %v", err)
	}

	options, err := r.queries.GetOptionsBySurveyID(ctx, surveyID)
	if err != nil {
		return database.Survey{}, nil, fmt.Errorf("error getting options: %v", err)
	}

	violations := conditions.ValidateActivation(ConditionModel(sections, questions, options))
	if len(violations) > 0 {
		return survey, violations, nil
	}

	updated, err := r.queries.UpdateSurveyStatus(ctx, database.UpdateSurveyStatusParams{
		ID:     surveyID,
		Status: database.SurveyStatusActive,
	})
	if err != nil {
		return database.Survey{}, nil, fmt.Errorf("error activating survey: %v", err)
	}

	return updated, nil, nil
}

func (r *Repository) CloseSurvey(ctx context.Context, surveyID int64) (database.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	survey, err := r.queries.GetSurvey(ctx, surveyID)
	if err != nil {
		return database.Survey{}, fmt.Errorf("error getting survey: %v", err)
	}

	if survey.Status != database.SurveyStatusActive {
		return database.Survey{}, custom_errors.ErrSurveyNotActive
	}

	updated, err := r.queries.UpdateSurveyStatus(ctx, database.UpdateSurveyStatusParams{
		ID:     surveyID,
		Status: database.SurveyStatusClosed,
	})
	if err != nil {
		return database.Survey{}, fmt.Errorf("error closing survey: %v", err)
	}

	return updated, nil
}

// ==================== Section Management ====================

func (r *Repository) CreateSection(ctx context.Context, params database.CreateSectionParams) (database.SurveySection, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	section, err := r.queries.CreateSection(ctx, params)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolationCode {
			return database.SurveySection{}, custom_errors.ErrConflict
		}
		return database.SurveySection{}, fmt.Errorf("error creating section: %v", err)
	}

	return section, nil
}

func (r *Repository) UpdateSection(ctx context.Context, params database.UpdateSectionParams) (database.SurveySection, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	section, err := r.queries.UpdateSection(ctx, params)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolationCode {
			return database.SurveySection{}, custom_errors.ErrConflict
		}
		return database.SurveySection{}, fmt.Errorf("error updating section: %v", err)
	}

	return section, nil
}

func (r *Repository) DeleteSection(ctx context.Context, sectionID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeleteSection(ctx, sectionID)
	if err != nil {
		return fmt.Errorf("error deleting section: %v", err)
	}

	return nil
}

// ==================== Question Management ====================

func (r *Repository) CreateQuestion(ctx context.Context, params database.CreateQuestionParams) (database.SurveyQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	question, err := r.queries.CreateQuestion(ctx, params)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolationCode {
			return database.SurveyQuestion{}, custom_errors.ErrConflict
		}
		return database.SurveyQuestion{}, fmt.Errorf("error creating question: %v", err)
	}

	return question, nil
}

func (r *Repository) UpdateQuestion(ctx context.Context, params database.UpdateQuestionParams) (database.SurveyQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	question, err := r.queries.UpdateQuestion(ctx, params)
	if err != nil {
		return database.SurveyQuestion{}, fmt.Errorf("error updating question: %v", err)
	}

	return question, nil
}

func (r *Repository) DeleteQuestion(ctx context.Context, questionID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeleteQuestion(ctx, questionID)
	if err != nil {
		return fmt.Errorf("error deleting question: %v", err)
	}

	return nil
}

// ==================== Question Options Management ====================

func (r *Repository) CreateQuestionOption(ctx context.Context, params database.CreateQuestionOptionParams) (database.QuestionOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	option, err := r.queries.CreateQuestionOption(ctx, params)
	if err != nil {
		return database.QuestionOption{}, fmt.Errorf("error creating question option: %v", err)
	}

	return option, nil
}

func (r *Repository) GetOptionsByQuestionID(ctx context.Context, questionID int64) ([]database.QuestionOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	options, err := r.queries.GetOptionsByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("error getting options: %v", err)
	}

	return options, nil
}

func (r *Repository) UpdateQuestionOption(ctx context.Context, params database.UpdateQuestionOptionParams) (database.QuestionOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	option, err := r.queries.UpdateQuestionOption(ctx, params)
	if err != nil {
		return database.QuestionOption{}, fmt.Errorf("error updating question option: %v", err)
	}

	return option, nil
}

func (r *Repository) DeleteQuestionOption(ctx context.Context, optionID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeleteQuestionOption(ctx, optionID)
	if err != nil {
		return fmt.Errorf("error deleting question option: %v", err)
	}

	return nil
}
