package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type SurveyStatus string

const (
	SurveyStatusDraft  SurveyStatus = "draft"
	SurveyStatusActive SurveyStatus = "active"
	SurveyStatusClosed SurveyStatus = "closed"
)

type QuestionType string

const (
	QuestionTypeShortText      QuestionType = "short_text"
	QuestionTypeLongText       QuestionType = "long_text"
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeRatingScale    QuestionType = "rating_scale"
)

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

type User struct {
	ID           int64              `json:"id"`
	Email        string             `json:"email"`
	Password     pgtype.Text        `json:"-"`
	FirstName    pgtype.Text        `json:"first_name"`
	LastName     pgtype.Text        `json:"last_name"`
	Role         string             `json:"role"`
	RefreshToken pgtype.Text        `json:"-"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Otp struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Code      string           `json:"code"`
	Domain    pgtype.Text      `json:"domain"`
	ExpiresAt pgtype.Timestamp `json:"expires_at"`
}

type Client struct {
	ID         int64              `json:"id"`
	FirstName  string             `json:"first_name"`
	LastName   string             `json:"last_name"`
	FileNumber pgtype.Text        `json:"file_number"`
	Status     string             `json:"status"`
	CreatedBy  int64              `json:"created_by"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

type Survey struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Status    SurveyStatus       `json:"status"`
	Anonymous bool               `json:"anonymous"`
	CreatedBy int64              `json:"created_by"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type SurveySection struct {
	ID                  int64       `json:"id"`
	SurveyID            int64       `json:"survey_id"`
	Title               string      `json:"title"`
	SortOrder           int32       `json:"sort_order"`
	ConditionQuestionID pgtype.Int8 `json:"condition_question_id"`
	ConditionValue      pgtype.Text `json:"condition_value"`
	IsActive            pgtype.Bool `json:"is_active"`
}

type SurveyQuestion struct {
	ID           int64        `json:"id"`
	SectionID    int64        `json:"section_id"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	SortOrder    int32        `json:"sort_order"`
	IsRequired   pgtype.Bool  `json:"is_required"`
}

type QuestionOption struct {
	ID          int64          `json:"id"`
	QuestionID  int64          `json:"question_id"`
	OptionValue string         `json:"option_value"`
	OptionLabel string         `json:"option_label"`
	Score       pgtype.Numeric `json:"score"`
	SortOrder   int32          `json:"sort_order"`
}

type Assignment struct {
	ID          int64              `json:"id"`
	SurveyID    int64              `json:"survey_id"`
	ClientID    pgtype.Int8        `json:"client_id"`
	AssignedBy  int64              `json:"assigned_by"`
	AccessToken string             `json:"access_token"`
	Status      AssignmentStatus   `json:"status"`
	ScoreTotal  pgtype.Numeric     `json:"score_total"`
	StartedAt   pgtype.Timestamptz `json:"started_at"`
	CompletedAt pgtype.Timestamptz `json:"completed_at"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type PartialAnswer struct {
	ID             int64              `json:"id"`
	AssignmentID   int64              `json:"assignment_id"`
	QuestionID     int64              `json:"question_id"`
	EncryptedValue []byte             `json:"-"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type Answer struct {
	ID           int64              `json:"id"`
	AssignmentID int64              `json:"assignment_id"`
	QuestionID   int64              `json:"question_id"`
	AnswerValue  string             `json:"answer_value"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}
