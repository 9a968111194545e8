package surveys

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/api/jsonutil"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Handler struct {
	Store Store
}

func parseIDParam(request *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	return id, err == nil
}

func claimsUserID(request *http.Request) int64 {
	claims, ok := request.Context().Value("claims").(*tokens.Claims)
	if !ok {
		return 0
	}
	return int64(claims.UserID)
}

// ==================== Survey Management Handlers ====================

func (h *Handler) CreateSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[CreateSurveyBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	survey, err := h.Store.CreateSurvey(ctx, database.CreateSurveyParams{
		Name:      data.Name,
		Anonymous: data.Anonymous,
		CreatedBy: userID,
	})
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey created successfully",
		Data:    survey,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	survey, err := h.Store.GetSurvey(ctx, surveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey retrieved successfully",
		Data:    survey,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) GetSurveyWithDetailsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	detail, err := h.Store.GetSurveyWithDetails(ctx, surveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey details retrieved successfully",
		Data:    detail,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListSurveysHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	status := request.URL.Query().Get("status")

	limit := 10
	if limitStr := request.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	offset := 0
	if offsetStr := request.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil {
			offset = o
		}
	}

	surveys, err := h.Store.ListSurveys(ctx, status, limit, offset)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "surveys retrieved successfully",
		Data:    surveys,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateSurveyBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	params := database.UpdateSurveyParams{ID: surveyID}
	if data.Name != nil {
		params.Name = pgtype.Text{String: *data.Name, Valid: true}
	}
	if data.Anonymous != nil {
		params.Anonymous = pgtype.Bool{Bool: *data.Anonymous, Valid: true}
	}

	survey, err := h.Store.UpdateSurvey(ctx, params)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey updated successfully",
		Data:    survey,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteSurvey(ctx, surveyID); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Lifecycle Handlers ====================

func (h *Handler) ActivateSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	survey, violations, err := h.Store.ActivateSurvey(ctx, surveyID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrSurveyNotDraft) {
			response := jsonutil.Response{
				Status:  "error",
				Message: err.Error(),
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if len(violations) > 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "survey has invalid section conditions",
			Data:    violations,
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnprocessableEntity)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey activated successfully",
		Data:    survey,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) CloseSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	survey, err := h.Store.CloseSurvey(ctx, surveyID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrSurveyNotActive) {
			response := jsonutil.Response{
				Status:  "error",
				Message: err.Error(),
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey closed successfully",
		Data:    survey,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Section Management Handlers ====================

func (h *Handler) CreateSectionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[CreateSectionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	params := database.CreateSectionParams{
		SurveyID:  surveyID,
		Title:     data.Title,
		SortOrder: data.SortOrder,
		IsActive:  pgtype.Bool{Bool: true, Valid: true},
	}
	if data.ConditionQuestionID != nil {
		params.ConditionQuestionID = pgtype.Int8{Int64: *data.ConditionQuestionID, Valid: true}
	}
	if data.ConditionValue != nil {
		params.ConditionValue = pgtype.Text{String: *data.ConditionValue, Valid: true}
	}

	section, err := h.Store.CreateSection(ctx, params)
	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "a section with this sort order already exists",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "section created successfully",
		Data:    section,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) UpdateSectionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	sectionID, ok := parseIDParam(request, "sectionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid section ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateSectionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	params := database.UpdateSectionParams{ID: sectionID}
	if data.Title != nil {
		params.Title = pgtype.Text{String: *data.Title, Valid: true}
	}
	if data.SortOrder != nil {
		params.SortOrder = pgtype.Int4{Int32: *data.SortOrder, Valid: true}
	}
	if data.ConditionQuestionID != nil {
		params.ConditionQuestionID = pgtype.Int8{Int64: *data.ConditionQuestionID, Valid: true}
	}
	if data.ConditionValue != nil {
		params.ConditionValue = pgtype.Text{String: *data.ConditionValue, Valid: true}
	}

	section, err := h.Store.UpdateSection(ctx, params)
	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "a section with this sort order already exists",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "section updated successfully",
		Data:    section,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteSectionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	sectionID, ok := parseIDParam(request, "sectionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid section ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteSection(ctx, sectionID); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "section deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Question Management Handlers ====================

func (h *Handler) CreateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	sectionID, ok := parseIDParam(request, "sectionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid section ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[CreateQuestionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	question, err := h.Store.CreateQuestion(ctx, database.CreateQuestionParams{
		SectionID:    sectionID,
		QuestionText: data.QuestionText,
		QuestionType: database.QuestionType(data.QuestionType),
		SortOrder:    data.SortOrder,
		IsRequired:   pgtype.Bool{Bool: data.IsRequired, Valid: true},
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "a question with this sort order already exists",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "question created successfully",
		Data:    question,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) UpdateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	questionID, ok := parseIDParam(request, "questionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid question ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateQuestionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	params := database.UpdateQuestionParams{ID: questionID}
	if data.QuestionText != nil {
		params.QuestionText = pgtype.Text{String: *data.QuestionText, Valid: true}
	}
	if data.QuestionType != nil {
		params.QuestionType = pgtype.Text{String: *data.QuestionType, Valid: true}
	}
	if data.SortOrder != nil {
		params.SortOrder = pgtype.Int4{Int32: *data.SortOrder, Valid: true}
	}
	if data.IsRequired != nil {
		params.IsRequired = pgtype.Bool{Bool: *data.IsRequired, Valid: true}
	}

	question, err := h.Store.UpdateQuestion(ctx, params)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "question updated successfully",
		Data:    question,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	questionID, ok := parseIDParam(request, "questionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid question ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteQuestion(ctx, questionID); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "question deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Question Options Handlers ====================

func (h *Handler) CreateQuestionOptionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	questionID, ok := parseIDParam(request, "questionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid question ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[CreateQuestionOptionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	params := database.CreateQuestionOptionParams{
		QuestionID:  questionID,
		OptionValue: data.OptionValue,
		OptionLabel: data.OptionLabel,
		SortOrder:   data.SortOrder,
	}
	if data.Score != nil {
		score := pgtype.Numeric{}
		if err := score.Scan(data.Score.String()); err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: "invalid score",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
			return
		}
		params.Score = score
	}

	option, err := h.Store.CreateQuestionOption(ctx, params)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "option created successfully",
		Data:    option,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetOptionsByQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	questionID, ok := parseIDParam(request, "questionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid question ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	options, err := h.Store.GetOptionsByQuestionID(ctx, questionID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "options retrieved successfully",
		Data:    options,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateQuestionOptionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	optionID, ok := parseIDParam(request, "optionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid option ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateQuestionOptionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	params := database.UpdateQuestionOptionParams{ID: optionID}
	if data.OptionValue != nil {
		params.OptionValue = pgtype.Text{String: *data.OptionValue, Valid: true}
	}
	if data.OptionLabel != nil {
		params.OptionLabel = pgtype.Text{String: *data.OptionLabel, Valid: true}
	}
	if data.SortOrder != nil {
		params.SortOrder = pgtype.Int4{Int32: *data.SortOrder, Valid: true}
	}
	if data.Score != nil {
		score := pgtype.Numeric{}
		if err := score.Scan(data.Score.String()); err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: "invalid score",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
			return
		}
		params.Score = score
	}

	option, err := h.Store.UpdateQuestionOption(ctx, params)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "option updated successfully",
		Data:    option,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteQuestionOptionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	optionID, ok := parseIDParam(request, "optionID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid option ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteQuestionOption(ctx, optionID); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "option deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}
