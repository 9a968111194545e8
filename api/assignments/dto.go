package assignments

import (
	"github.com/casenote/casenote/api/conditions"
	"github.com/casenote/casenote/database"
	"github.com/shopspring/decimal"
)

// Request bodies

type CreateAssignmentBody struct {
	SurveyID int64  `json:"survey_id" validate:"required"`
	ClientID *int64 `json:"client_id"`
}

type AnswerInput struct {
	QuestionID int64  `json:"question_id" validate:"required"`
	Value      string `json:"value"`
}

type SaveAnswerBody struct {
	QuestionID int64  `json:"question_id" validate:"required"`
	Value      string `json:"value"`
}

type SubmitPageBody struct {
	Answers []AnswerInput `json:"answers" validate:"required,dive"`
}

type SubmitBody struct {
	Answers []AnswerInput `json:"answers" validate:"dive"`
}

// SurveyModel bundles everything the engine needs to evaluate a form: the
// survey row, the pure condition model, and the option rows keyed by question
// for labels and scores.
type SurveyModel struct {
	Survey   database.Survey
	Sections []conditions.Section
	Options  map[int64][]database.QuestionOption
}

// Response structs

type OptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type QuestionView struct {
	ID         int64        `json:"id"`
	Text       string       `json:"text"`
	Type       string       `json:"type"`
	SortOrder  int32        `json:"sort_order"`
	IsRequired bool         `json:"is_required"`
	Options    []OptionView `json:"options,omitempty"`
	Value      string       `json:"value,omitempty"`
}

type SectionView struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	SortOrder int32          `json:"sort_order"`
	Questions []QuestionView `json:"questions"`
}

type FormView struct {
	AssignmentID int64         `json:"assignment_id"`
	SurveyName   string        `json:"survey_name"`
	Status       string        `json:"status"`
	Sections     []SectionView `json:"sections"`
	Progress     Progress      `json:"progress"`
}

type MissingQuestion struct {
	QuestionID int64  `json:"question_id"`
	SectionID  int64  `json:"section_id"`
	Text       string `json:"text"`
}

type Progress struct {
	TotalQuestions      int             `json:"total_questions"`
	AnsweredQuestions   int             `json:"answered_questions"`
	PercentageCompleted decimal.Decimal `json:"percentage_completed"`
}
