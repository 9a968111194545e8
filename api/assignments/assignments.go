package assignments

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/casenote/casenote/api/conditions"
	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/api/jsonutil"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/casenote/casenote/queue"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Handler struct {
	Store Store
	Queue queue.Queue
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

// resolveAssignment looks the assignment up by the access token in the URL and
// writes the error response itself when that fails.
func (h *Handler) resolveAssignment(ctx context.Context, responseWriter http.ResponseWriter, request *http.Request) (database.Assignment, bool) {
	accessToken := chi.URLParam(request, "accessToken")

	assignment, err := h.Store.GetAssignmentByToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "assignment not found",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
			return database.Assignment{}, false
		}

		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return database.Assignment{}, false
	}

	return assignment, true
}

// ==================== Staff Handlers ====================

func (h *Handler) CreateAssignmentHandler(responseWriter http.ResponseWriter, request *http.Request) {
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

	data, err := jsonutil.UnmarshalJsonResponse[CreateAssignmentBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	model, err := h.Store.GetSurveyModel(ctx, data.SurveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if model.Survey.Status != database.SurveyStatusActive {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrSurveyNotActive.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
		return
	}

	clientID := pgtype.Int8{}
	if data.ClientID != nil {
		clientID = pgtype.Int8{Int64: *data.ClientID, Valid: true}
	}

	assignment, err := h.Store.CreateAssignment(ctx, database.CreateAssignmentParams{
		SurveyID:    data.SurveyID,
		ClientID:    clientID,
		AssignedBy:  userID,
		AccessToken: uuid.NewString(),
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
		Status:  "Success",
		Message: "Assignment created successfully",
		Data:    assignment,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetAssignmentHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	assignmentID, ok := parseIDParam(request, "assignmentID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid assignment id",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	assignment, err := h.Store.GetAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "assignment not found",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
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
		Status:  "Success",
		Message: "Assignment retrieved successfully",
		Data:    assignment,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListAssignmentsBySurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	surveyID, ok := parseIDParam(request, "surveyID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid survey id",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	assignments, err := h.Store.ListAssignmentsBySurveyID(ctx, surveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Assignments retrieved successfully",
		Data:    assignments,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListAssignmentsByClientHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	clientID, ok := parseIDParam(request, "clientID")
	if !ok {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid client id",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	assignments, err := h.Store.ListAssignmentsByClientID(ctx, clientID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Assignments retrieved successfully",
		Data:    assignments,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Participant Handlers ====================

func (h *Handler) GetFormHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	assignment, ok := h.resolveAssignment(ctx, responseWriter, request)
	if !ok {
		return
	}

	model, err := h.Store.GetSurveyModel(ctx, assignment.SurveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	answers, err := h.Store.LoadPartialAnswers(ctx, assignment.ID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Form retrieved successfully",
		Data:    buildFormView(assignment, model, answers),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// SaveAnswerHandler persists a single in-progress answer. A blank value clears
// the saved answer for that question instead of storing an empty row.
func (h *Handler) SaveAnswerHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	assignment, ok := h.resolveAssignment(ctx, responseWriter, request)
	if !ok {
		return
	}

	if assignment.Status == database.AssignmentStatusCompleted {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrAssignmentCompleted.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[SaveAnswerBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	model, err := h.Store.GetSurveyModel(ctx, assignment.SurveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if _, exists := questionIndex(model)[data.QuestionID]; !exists {
		response := jsonutil.Response{
			Status:  "error",
			Message: "question does not belong to this survey",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	answers, err := h.Store.LoadPartialAnswers(ctx, assignment.ID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(data.Value) == "" {
		err = h.Store.DeletePartialAnswer(ctx, assignment.ID, data.QuestionID)
		delete(answers, data.QuestionID)
	} else {
		err = h.Store.UpsertPartialAnswer(ctx, assignment.ID, data.QuestionID, data.Value)
		answers[data.QuestionID] = data.Value
	}
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if assignment.Status == database.AssignmentStatusPending {
		if err := h.Store.StartAssignment(ctx, assignment.ID); err != nil {
			log.Printf("error starting assignment %d: %v", assignment.ID, err)
		}
	}

	h.pruneHiddenAnswers(ctx, assignment.ID, model, answers)

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Answer saved successfully",
		Data:    computeProgress(model, answers),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// SubmitPageHandler stores every answer in the batch, then reports the
// required questions still missing from the sections the batch touched.
// Answers are stored regardless of the validation outcome so a participant
// never loses work to a failed check.
func (h *Handler) SubmitPageHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	assignment, ok := h.resolveAssignment(ctx, responseWriter, request)
	if !ok {
		return
	}

	if assignment.Status == database.AssignmentStatusCompleted {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrAssignmentCompleted.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[SubmitPageBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	model, err := h.Store.GetSurveyModel(ctx, assignment.SurveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	answers, err := h.Store.LoadPartialAnswers(ctx, assignment.ID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	index := questionIndex(model)
	touchedSections := make(map[int64]bool)

	for _, input := range data.Answers {
		question, exists := index[input.QuestionID]
		if !exists {
			continue
		}
		touchedSections[question.SectionID] = true

		if strings.TrimSpace(input.Value) == "" {
			err = h.Store.DeletePartialAnswer(ctx, assignment.ID, input.QuestionID)
			delete(answers, input.QuestionID)
		} else {
			err = h.Store.UpsertPartialAnswer(ctx, assignment.ID, input.QuestionID, input.Value)
			answers[input.QuestionID] = input.Value
		}
		if err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: err.Error(),
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
			return
		}
	}

	if assignment.Status == database.AssignmentStatusPending {
		if err := h.Store.StartAssignment(ctx, assignment.ID); err != nil {
			log.Printf("error starting assignment %d: %v", assignment.ID, err)
		}
	}

	h.pruneHiddenAnswers(ctx, assignment.ID, model, answers)

	visible := conditions.VisibleSections(model.Sections, answers)

	var missing []conditions.Question
	for _, question := range conditions.RequiredMissing(model.Sections, visible, answers) {
		if touchedSections[question.SectionID] {
			missing = append(missing, question)
		}
	}

	if len(missing) > 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "required questions are missing answers",
			Data:    missingQuestions(missing),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnprocessableEntity)
		return
	}

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Page submitted successfully",
		Data:    computeProgress(model, answers),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// SubmitHandler finalizes the assignment: every required question in every
// visible section must have an answer, then the collected answers become
// permanent rows, the assignment completes with its score, and the partial
// answers are cleared, all atomically.
func (h *Handler) SubmitHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	assignment, ok := h.resolveAssignment(ctx, responseWriter, request)
	if !ok {
		return
	}

	if assignment.Status == database.AssignmentStatusCompleted {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrAssignmentCompleted.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[SubmitBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	model, err := h.Store.GetSurveyModel(ctx, assignment.SurveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	answers, err := h.Store.LoadPartialAnswers(ctx, assignment.ID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	index := questionIndex(model)
	for _, input := range data.Answers {
		if _, exists := index[input.QuestionID]; !exists {
			continue
		}
		if strings.TrimSpace(input.Value) == "" {
			delete(answers, input.QuestionID)
			continue
		}
		answers[input.QuestionID] = input.Value
	}

	visible := conditions.VisibleSections(model.Sections, answers)

	missing := conditions.RequiredMissing(model.Sections, visible, answers)
	if len(missing) > 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "required questions are missing answers",
			Data:    missingQuestions(missing),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnprocessableEntity)
		return
	}

	scoreTotal := computeScore(model, answers, visible)

	completed, err := h.Store.FinalizeAssignment(ctx, assignment.ID, answers, scoreTotal)
	if err != nil {
		if errors.Is(err, custom_errors.ErrAssignmentCompleted) {
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

	h.notifyCompletion(ctx, completed, model)

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Assignment submitted successfully",
		Data:    completed,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) GetProgressHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	assignment, ok := h.resolveAssignment(ctx, responseWriter, request)
	if !ok {
		return
	}

	model, err := h.Store.GetSurveyModel(ctx, assignment.SurveyID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	answers, err := h.Store.LoadPartialAnswers(ctx, assignment.ID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Progress retrieved successfully",
		Data:    computeProgress(model, answers),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// pruneHiddenAnswers drops saved answers for questions whose sections fell out
// of visibility after the latest change. Failures here only log, the save that
// triggered the prune already succeeded.
func (h *Handler) pruneHiddenAnswers(ctx context.Context, assignmentID int64, model SurveyModel, answers map[int64]string) {
	visible := conditions.VisibleSections(model.Sections, answers)

	var stale []int64
	for _, questionID := range conditions.HiddenQuestionIDs(model.Sections, visible) {
		if _, saved := answers[questionID]; saved {
			stale = append(stale, questionID)
		}
	}
	if len(stale) == 0 {
		return
	}

	if err := h.Store.DeletePartialAnswers(ctx, assignmentID, stale); err != nil {
		log.Printf("error pruning hidden answers for assignment %d: %v", assignmentID, err)
	}

	for _, questionID := range stale {
		delete(answers, questionID)
	}
}

func (h *Handler) notifyCompletion(ctx context.Context, assignment database.Assignment, model SurveyModel) {
	email, err := h.Store.GetAssignerEmail(ctx, assignment.AssignedBy)
	if err != nil {
		log.Printf("error finding assigner for assignment %d: %v", assignment.ID, err)
		return
	}

	payload := queue.AssignmentCompletedPayload{
		Name:         "assignment-completed",
		Email:        email,
		SurveyName:   model.Survey.Name,
		AssignmentID: assignment.ID,
	}

	if err := h.Queue.Enqueue(&payload); err != nil {
		log.Printf("error enqueueing completion notification for assignment %d: %v", assignment.ID, err)
	}
}
