package surveys

import (
	"github.com/casenote/casenote/database"
	"github.com/shopspring/decimal"
)

// Request bodies

type CreateSurveyBody struct {
	Name      string `json:"name" validate:"required"`
	Anonymous bool   `json:"anonymous"`
}

type UpdateSurveyBody struct {
	Name      *string `json:"name"`
	Anonymous *bool   `json:"anonymous"`
}

type CreateSectionBody struct {
	Title               string  `json:"title" validate:"required"`
	SortOrder           int32   `json:"sort_order"`
	ConditionQuestionID *int64  `json:"condition_question_id"`
	ConditionValue      *string `json:"condition_value"`
}

type UpdateSectionBody struct {
	Title               *string `json:"title"`
	SortOrder           *int32  `json:"sort_order"`
	ConditionQuestionID *int64  `json:"condition_question_id"`
	ConditionValue      *string `json:"condition_value"`
}

type CreateQuestionBody struct {
	QuestionText string `json:"question_text" validate:"required"`
	QuestionType string `json:"question_type" validate:"required,oneof=short_text long_text single_choice multiple_choice yes_no rating_scale"`
	SortOrder    int32  `json:"sort_order"`
	IsRequired   bool   `json:"is_required"`
}

type UpdateQuestionBody struct {
	QuestionText *string `json:"question_text"`
	QuestionType *string `json:"question_type" validate:"omitempty,oneof=short_text long_text single_choice multiple_choice yes_no rating_scale"`
	SortOrder    *int32  `json:"sort_order"`
	IsRequired   *bool   `json:"is_required"`
}

type CreateQuestionOptionBody struct {
	OptionValue string           `json:"option_value" validate:"required"`
	OptionLabel string           `json:"option_label"`
	Score       *decimal.Decimal `json:"score"`
	SortOrder   int32            `json:"sort_order"`
}

type UpdateQuestionOptionBody struct {
	OptionValue *string          `json:"option_value"`
	OptionLabel *string          `json:"option_label"`
	Score       *decimal.Decimal `json:"score"`
	SortOrder   *int32           `json:"sort_order"`
}

// Response structs

type QuestionWithOptions struct {
	Question database.SurveyQuestion  `json:"question"`
	Options  []database.QuestionOption `json:"options"`
}

type SectionWithQuestions struct {
	Section   database.SurveySection `json:"section"`
	Questions []QuestionWithOptions  `json:"questions"`
}

type SurveyDetail struct {
	Survey   database.Survey        `json:"survey"`
	Sections []SectionWithQuestions `json:"sections"`
}
