package custom_errors

import "errors"

var (
	ErrConflict            = errors.New("record already exists")
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("invalid credentials")
	ErrInternalServer      = errors.New("internal server error")
	ErrInvalidOTP          = errors.New("invalid OTP")
	ErrSurveyNotDraft      = errors.New("survey is not in draft status")
	ErrSurveyNotActive     = errors.New("survey is not active")
	ErrAssignmentCompleted = errors.New("assignment is already completed")
)
