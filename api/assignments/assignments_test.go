package assignments_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casenote/casenote/api/assignments"
	"github.com/casenote/casenote/api/conditions"
	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/database"
	"github.com/casenote/casenote/queue"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ============================================================================
// Test Helpers
// ============================================================================

func assertResponseCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("response code = %d, want %d", got, want)
	}
}

func assertResponseStatus(t *testing.T, got map[string]interface{}, wantStatus string) {
	t.Helper()
	if got["status"] != wantStatus {
		t.Errorf("status = %v, want %v", got["status"], wantStatus)
	}
}

func withURLParam(req *http.Request, name, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeContext))
}

func numericScore(value int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(value), Exp: 0, Valid: true}
}

// intakeModel builds a two section survey: section one is always visible,
// section two opens only when the employment question is answered "1".
func intakeModel() assignments.SurveyModel {
	return assignments.SurveyModel{
		Survey: database.Survey{ID: 1, Name: "Intake Assessment", Status: database.SurveyStatusActive},
		Sections: []conditions.Section{
			{
				ID: 1, Title: "Background", SortOrder: 1,
				Questions: []conditions.Question{
					{ID: 1, SectionID: 1, Text: "Are you currently employed?", Type: conditions.TypeYesNo, Required: true},
					{ID: 2, SectionID: 1, Text: "Housing situation", Type: conditions.TypeSingleChoice, Options: []string{"stable", "at_risk", "unhoused"}},
				},
			},
			{
				ID: 2, Title: "Employment", SortOrder: 2,
				ConditionQuestionID: 1, ConditionValue: "1",
				Questions: []conditions.Question{
					{ID: 3, SectionID: 2, Text: "Employer name", Type: conditions.TypeShortText, Required: true},
					{ID: 4, SectionID: 2, Text: "Work stressors", Type: conditions.TypeMultipleChoice, Options: []string{"hours", "pay", "conflict"}},
				},
			},
		},
		Options: map[int64][]database.QuestionOption{
			2: {
				{ID: 10, QuestionID: 2, OptionValue: "stable", OptionLabel: "Stable", Score: numericScore(0)},
				{ID: 11, QuestionID: 2, OptionValue: "at_risk", OptionLabel: "At risk", Score: numericScore(2)},
				{ID: 12, QuestionID: 2, OptionValue: "unhoused", OptionLabel: "Unhoused", Score: numericScore(5)},
			},
			4: {
				{ID: 13, QuestionID: 4, OptionValue: "hours", OptionLabel: "Hours", Score: numericScore(1)},
				{ID: 14, QuestionID: 4, OptionValue: "pay", OptionLabel: "Pay", Score: numericScore(2)},
				{ID: 15, QuestionID: 4, OptionValue: "conflict", OptionLabel: "Conflict", Score: numericScore(4)},
			},
		},
	}
}

// ============================================================================
// Stubs
// ============================================================================

type StubAssignmentStore struct {
	Assignments map[int64]database.Assignment
	ByToken     map[string]int64
	Partials    map[int64]map[int64]string
	Answers     map[int64]map[int64]string
	Scores      map[int64]decimal.Decimal
	Started     map[int64]bool
	Model       assignments.SurveyModel

	ShouldFailSave     bool
	ShouldFailFinalize bool
}

func NewStubAssignmentStore(model assignments.SurveyModel) *StubAssignmentStore {
	return &StubAssignmentStore{
		Assignments: make(map[int64]database.Assignment),
		ByToken:     make(map[string]int64),
		Partials:    make(map[int64]map[int64]string),
		Answers:     make(map[int64]map[int64]string),
		Scores:      make(map[int64]decimal.Decimal),
		Started:     make(map[int64]bool),
		Model:       model,
	}
}

func (s *StubAssignmentStore) AddAssignment(assignment database.Assignment) {
	s.Assignments[assignment.ID] = assignment
	s.ByToken[assignment.AccessToken] = assignment.ID
	s.Partials[assignment.ID] = make(map[int64]string)
}

func (s *StubAssignmentStore) CreateAssignment(ctx context.Context, params database.CreateAssignmentParams) (database.Assignment, error) {
	assignment := database.Assignment{
		ID:          int64(len(s.Assignments) + 1),
		SurveyID:    params.SurveyID,
		ClientID:    params.ClientID,
		AssignedBy:  params.AssignedBy,
		AccessToken: params.AccessToken,
		Status:      database.AssignmentStatusPending,
	}
	s.AddAssignment(assignment)
	return assignment, nil
}

func (s *StubAssignmentStore) GetAssignment(ctx context.Context, assignmentID int64) (database.Assignment, error) {
	assignment, exists := s.Assignments[assignmentID]
	if !exists {
		return database.Assignment{}, custom_errors.ErrNotFound
	}
	return assignment, nil
}

func (s *StubAssignmentStore) GetAssignmentByToken(ctx context.Context, accessToken string) (database.Assignment, error) {
	assignmentID, exists := s.ByToken[accessToken]
	if !exists {
		return database.Assignment{}, custom_errors.ErrNotFound
	}
	return s.Assignments[assignmentID], nil
}

func (s *StubAssignmentStore) ListAssignmentsBySurveyID(ctx context.Context, surveyID int64) ([]database.Assignment, error) {
	var items []database.Assignment
	for _, assignment := range s.Assignments {
		if assignment.SurveyID == surveyID {
			items = append(items, assignment)
		}
	}
	return items, nil
}

func (s *StubAssignmentStore) ListAssignmentsByClientID(ctx context.Context, clientID int64) ([]database.Assignment, error) {
	var items []database.Assignment
	for _, assignment := range s.Assignments {
		if assignment.ClientID.Valid && assignment.ClientID.Int64 == clientID {
			items = append(items, assignment)
		}
	}
	return items, nil
}

func (s *StubAssignmentStore) StartAssignment(ctx context.Context, assignmentID int64) error {
	assignment, exists := s.Assignments[assignmentID]
	if !exists || assignment.Status != database.AssignmentStatusPending {
		return nil
	}
	assignment.Status = database.AssignmentStatusInProgress
	s.Assignments[assignmentID] = assignment
	s.Started[assignmentID] = true
	return nil
}

func (s *StubAssignmentStore) GetSurveyModel(ctx context.Context, surveyID int64) (assignments.SurveyModel, error) {
	return s.Model, nil
}

func (s *StubAssignmentStore) LoadPartialAnswers(ctx context.Context, assignmentID int64) (map[int64]string, error) {
	answers := make(map[int64]string)
	for questionID, value := range s.Partials[assignmentID] {
		answers[questionID] = value
	}
	return answers, nil
}

func (s *StubAssignmentStore) UpsertPartialAnswer(ctx context.Context, assignmentID, questionID int64, value string) error {
	if s.ShouldFailSave {
		return errors.New("database error")
	}
	s.Partials[assignmentID][questionID] = value
	return nil
}

func (s *StubAssignmentStore) DeletePartialAnswer(ctx context.Context, assignmentID, questionID int64) error {
	if s.ShouldFailSave {
		return errors.New("database error")
	}
	delete(s.Partials[assignmentID], questionID)
	return nil
}

func (s *StubAssignmentStore) DeletePartialAnswers(ctx context.Context, assignmentID int64, questionIDs []int64) error {
	for _, questionID := range questionIDs {
		delete(s.Partials[assignmentID], questionID)
	}
	return nil
}

func (s *StubAssignmentStore) FinalizeAssignment(ctx context.Context, assignmentID int64, answers map[int64]string, scoreTotal decimal.Decimal) (database.Assignment, error) {
	if s.ShouldFailFinalize {
		return database.Assignment{}, errors.New("database error")
	}

	assignment := s.Assignments[assignmentID]
	if assignment.Status == database.AssignmentStatusCompleted {
		return database.Assignment{}, custom_errors.ErrAssignmentCompleted
	}

	stored := make(map[int64]string)
	for questionID, value := range answers {
		stored[questionID] = value
	}
	s.Answers[assignmentID] = stored
	s.Scores[assignmentID] = scoreTotal

	assignment.Status = database.AssignmentStatusCompleted
	s.Assignments[assignmentID] = assignment
	delete(s.Partials, assignmentID)

	return assignment, nil
}

func (s *StubAssignmentStore) GetAssignerEmail(ctx context.Context, userID int64) (string, error) {
	return "staff@example.com", nil
}

type StubQueue struct {
	Tasks      []queue.Processor
	ShouldFail bool
}

func (q *StubQueue) Enqueue(processor queue.Processor) error {
	if q.ShouldFail {
		return errors.New("queue error")
	}
	q.Tasks = append(q.Tasks, processor)
	return nil
}

// ============================================================================
// Tests
// ============================================================================

func TestGetFormHandler(t *testing.T) {
	t.Run("hides the conditional section until its trigger matches", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		req := httptest.NewRequest(http.MethodGet, "/assignments/fill/token-1", nil)
		req = withURLParam(req, "accessToken", "token-1")
		rec := httptest.NewRecorder()

		handler.GetFormHandler(rec, req)

		var got struct {
			Status string               `json:"status"`
			Data   assignments.FormView `json:"data"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &got)

		assertResponseCode(t, rec.Code, http.StatusOK)

		if len(got.Data.Sections) != 1 {
			t.Fatalf("expected 1 visible section, got %d", len(got.Data.Sections))
		}
		if got.Data.Sections[0].Title != "Background" {
			t.Errorf("visible section = %q, want %q", got.Data.Sections[0].Title, "Background")
		}
	})

	t.Run("shows the conditional section and prefills saved answers", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "1"
		store.Partials[1][3] = "Acme Ltd"

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		req := httptest.NewRequest(http.MethodGet, "/assignments/fill/token-1", nil)
		req = withURLParam(req, "accessToken", "token-1")
		rec := httptest.NewRecorder()

		handler.GetFormHandler(rec, req)

		var got struct {
			Data assignments.FormView `json:"data"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &got)

		assertResponseCode(t, rec.Code, http.StatusOK)

		if len(got.Data.Sections) != 2 {
			t.Fatalf("expected 2 visible sections, got %d", len(got.Data.Sections))
		}
		if got.Data.Sections[1].Questions[0].Value != "Acme Ltd" {
			t.Errorf("prefill = %q, want %q", got.Data.Sections[1].Questions[0].Value, "Acme Ltd")
		}
	})

	t.Run("returns 404 for an unknown access token", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		req := httptest.NewRequest(http.MethodGet, "/assignments/fill/nope", nil)
		req = withURLParam(req, "accessToken", "nope")
		rec := httptest.NewRecorder()

		handler.GetFormHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusNotFound)
	})
}

func TestSaveAnswerHandler(t *testing.T) {
	saveRequest := func(token string, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/assignments/fill/"+token+"/answers", bytes.NewBufferString(body))
		return withURLParam(req, "accessToken", token)
	}

	t.Run("saves an answer and starts a pending assignment", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusPending})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 2, "value": "stable"}`))

		assertResponseCode(t, rec.Code, http.StatusOK)

		if store.Partials[1][2] != "stable" {
			t.Errorf("saved value = %q, want %q", store.Partials[1][2], "stable")
		}
		if !store.Started[1] {
			t.Error("expected assignment to be started")
		}
	})

	t.Run("saving again replaces the previous value", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 2, "value": "stable"}`))
		assertResponseCode(t, rec.Code, http.StatusOK)

		rec = httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 2, "value": "unhoused"}`))
		assertResponseCode(t, rec.Code, http.StatusOK)

		if len(store.Partials[1]) != 1 {
			t.Fatalf("expected 1 saved answer, got %d", len(store.Partials[1]))
		}
		if store.Partials[1][2] != "unhoused" {
			t.Errorf("saved value = %q, want %q", store.Partials[1][2], "unhoused")
		}
	})

	t.Run("a blank value clears the saved answer", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][2] = "stable"

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 2, "value": "  "}`))
		assertResponseCode(t, rec.Code, http.StatusOK)

		if _, exists := store.Partials[1][2]; exists {
			t.Error("expected saved answer to be cleared")
		}
	})

	t.Run("changing the trigger answer prunes answers in the hidden section", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "1"
		store.Partials[1][3] = "Acme Ltd"
		store.Partials[1][4] = "hours,pay"

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 1, "value": "0"}`))
		assertResponseCode(t, rec.Code, http.StatusOK)

		if _, exists := store.Partials[1][3]; exists {
			t.Error("expected employer answer to be pruned")
		}
		if _, exists := store.Partials[1][4]; exists {
			t.Error("expected stressors answer to be pruned")
		}
		if store.Partials[1][1] != "0" {
			t.Errorf("trigger answer = %q, want %q", store.Partials[1][1], "0")
		}
	})

	t.Run("returns 409 for a completed assignment", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusCompleted})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 2, "value": "stable"}`))

		assertResponseCode(t, rec.Code, http.StatusConflict)
	})

	t.Run("returns 400 for a question outside the survey", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 99, "value": "stable"}`))

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("returns 500 when the store fails", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.ShouldFailSave = true

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SaveAnswerHandler(rec, saveRequest("token-1", `{"question_id": 2, "value": "stable"}`))

		assertResponseCode(t, rec.Code, http.StatusInternalServerError)
	})
}

func TestSubmitPageHandler(t *testing.T) {
	pageRequest := func(token string, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/assignments/fill/"+token+"/pages", bytes.NewBufferString(body))
		return withURLParam(req, "accessToken", token)
	}

	t.Run("stores the batch and reports missing required answers", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SubmitPageHandler(rec, pageRequest("token-1", `{"answers": [{"question_id": 2, "value": "at_risk"}]}`))

		var got map[string]interface{}
		_ = json.Unmarshal(rec.Body.Bytes(), &got)

		assertResponseCode(t, rec.Code, http.StatusUnprocessableEntity)
		assertResponseStatus(t, got, "error")

		// the valid answer must survive the failed check
		if store.Partials[1][2] != "at_risk" {
			t.Errorf("saved value = %q, want %q", store.Partials[1][2], "at_risk")
		}
	})

	t.Run("accepts a complete page", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SubmitPageHandler(rec, pageRequest("token-1", `{"answers": [{"question_id": 1, "value": "0"}, {"question_id": 2, "value": "stable"}]}`))

		assertResponseCode(t, rec.Code, http.StatusOK)
	})

	t.Run("does not demand answers for questions the batch never touched", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "1"

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		// section two is visible but the batch only touches section one
		rec := httptest.NewRecorder()
		handler.SubmitPageHandler(rec, pageRequest("token-1", `{"answers": [{"question_id": 2, "value": "stable"}]}`))

		assertResponseCode(t, rec.Code, http.StatusOK)
	})
}

func TestSubmitHandler(t *testing.T) {
	submitRequest := func(token string, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/assignments/fill/"+token+"/submit", bytes.NewBufferString(body))
		return withURLParam(req, "accessToken", token)
	}

	t.Run("rejects submission while visible required answers are missing", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "1"

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SubmitHandler(rec, submitRequest("token-1", `{"answers": []}`))

		var got struct {
			Data []assignments.MissingQuestion `json:"data"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &got)

		assertResponseCode(t, rec.Code, http.StatusUnprocessableEntity)

		if len(got.Data) != 1 {
			t.Fatalf("expected 1 missing question, got %d", len(got.Data))
		}
		if got.Data[0].QuestionID != 3 {
			t.Errorf("missing question = %d, want 3", got.Data[0].QuestionID)
		}

		if assignment := store.Assignments[1]; assignment.Status == database.AssignmentStatusCompleted {
			t.Error("assignment must not complete on a failed submission")
		}
	})

	t.Run("ignores required questions in hidden sections", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "0"

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SubmitHandler(rec, submitRequest("token-1", `{"answers": []}`))

		assertResponseCode(t, rec.Code, http.StatusOK)
	})

	t.Run("completes the assignment, scores it and clears saved answers", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AssignedBy: 7, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "1"
		store.Partials[1][2] = "unhoused"
		store.Partials[1][3] = "Acme Ltd"

		stubQueue := &StubQueue{}
		handler := &assignments.Handler{Store: store, Queue: stubQueue}

		rec := httptest.NewRecorder()
		handler.SubmitHandler(rec, submitRequest("token-1", `{"answers": [{"question_id": 4, "value": "hours,conflict"}]}`))

		assertResponseCode(t, rec.Code, http.StatusOK)

		if assignment := store.Assignments[1]; assignment.Status != database.AssignmentStatusCompleted {
			t.Errorf("assignment status = %q, want %q", assignment.Status, database.AssignmentStatusCompleted)
		}

		if len(store.Answers[1]) != 4 {
			t.Errorf("expected 4 permanent answers, got %d", len(store.Answers[1]))
		}
		if store.Answers[1][4] != "hours,conflict" {
			t.Errorf("stored answer = %q, want %q", store.Answers[1][4], "hours,conflict")
		}

		if _, exists := store.Partials[1]; exists {
			t.Error("expected saved answers to be cleared")
		}

		// unhoused (5) + hours (1) + conflict (4)
		want := decimal.NewFromInt(10)
		if !store.Scores[1].Equal(want) {
			t.Errorf("score = %s, want %s", store.Scores[1], want)
		}

		if len(stubQueue.Tasks) != 1 {
			t.Errorf("expected 1 notification task, got %d", len(stubQueue.Tasks))
		}
	})

	t.Run("returns 409 when the assignment is already completed", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusCompleted})

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SubmitHandler(rec, submitRequest("token-1", `{"answers": []}`))

		assertResponseCode(t, rec.Code, http.StatusConflict)
	})

	t.Run("returns 500 when finalizing fails", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "0"
		store.ShouldFailFinalize = true

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		rec := httptest.NewRecorder()
		handler.SubmitHandler(rec, submitRequest("token-1", `{"answers": []}`))

		assertResponseCode(t, rec.Code, http.StatusInternalServerError)
	})
}

func TestGetProgressHandler(t *testing.T) {
	t.Run("counts answered questions against visible questions only", func(t *testing.T) {
		store := NewStubAssignmentStore(intakeModel())
		store.AddAssignment(database.Assignment{ID: 1, SurveyID: 1, AccessToken: "token-1", Status: database.AssignmentStatusInProgress})
		store.Partials[1][1] = "0"

		handler := &assignments.Handler{Store: store, Queue: &StubQueue{}}

		req := httptest.NewRequest(http.MethodGet, "/assignments/fill/token-1/progress", nil)
		req = withURLParam(req, "accessToken", "token-1")
		rec := httptest.NewRecorder()

		handler.GetProgressHandler(rec, req)

		var got struct {
			Data assignments.Progress `json:"data"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &got)

		assertResponseCode(t, rec.Code, http.StatusOK)

		// section two is hidden, so only the two background questions count
		if got.Data.TotalQuestions != 2 {
			t.Errorf("total questions = %d, want 2", got.Data.TotalQuestions)
		}
		if got.Data.AnsweredQuestions != 1 {
			t.Errorf("answered questions = %d, want 1", got.Data.AnsweredQuestions)
		}
	})
}
