package surveys_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casenote/casenote/api/conditions"
	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/api/surveys"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/go-chi/chi/v5"
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

func authenticatedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(context.WithValue(req.Context(), "claims", &tokens.Claims{UserID: 1, Role: "staff"}))
}

func withURLParam(req *http.Request, name, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeContext))
}

// ============================================================================
// Stubs
// ============================================================================

type StubSurveyStore struct {
	Surveys    map[int64]database.Survey
	Sections   map[int64]database.SurveySection
	Violations []conditions.Violation

	ShouldFailCreate  bool
	ShouldFailSection bool
}

func NewStubSurveyStore() *StubSurveyStore {
	return &StubSurveyStore{
		Surveys:  make(map[int64]database.Survey),
		Sections: make(map[int64]database.SurveySection),
	}
}

func (s *StubSurveyStore) CreateSurvey(ctx context.Context, params database.CreateSurveyParams) (database.Survey, error) {
	if s.ShouldFailCreate {
		return database.Survey{}, errors.New("database error")
	}
	survey := database.Survey{
		ID:        int64(len(s.Surveys) + 1),
		Name:      params.Name,
		Status:    database.SurveyStatusDraft,
		CreatedBy: params.CreatedBy,
	}
	s.Surveys[survey.ID] = survey
	return survey, nil
}

func (s *StubSurveyStore) GetSurvey(ctx context.Context, surveyID int64) (database.Survey, error) {
	survey, exists := s.Surveys[surveyID]
	if !exists {
		return database.Survey{}, custom_errors.ErrNotFound
	}
	return survey, nil
}

func (s *StubSurveyStore) GetSurveyWithDetails(ctx context.Context, surveyID int64) (surveys.SurveyDetail, error) {
	survey, exists := s.Surveys[surveyID]
	if !exists {
		return surveys.SurveyDetail{}, custom_errors.ErrNotFound
	}
	return surveys.SurveyDetail{Survey: survey}, nil
}

func (s *StubSurveyStore) ListSurveys(ctx context.Context, status string, limit, offset int) ([]database.Survey, error) {
	var items []database.Survey
	for _, survey := range s.Surveys {
		if status == "" || string(survey.Status) == status {
			items = append(items, survey)
		}
	}
	return items, nil
}

func (s *StubSurveyStore) UpdateSurvey(ctx context.Context, params database.UpdateSurveyParams) (database.Survey, error) {
	survey, exists := s.Surveys[params.ID]
	if !exists {
		return database.Survey{}, custom_errors.ErrNotFound
	}
	if params.Name.Valid {
		survey.Name = params.Name.String
	}
	s.Surveys[params.ID] = survey
	return survey, nil
}

func (s *StubSurveyStore) DeleteSurvey(ctx context.Context, surveyID int64) error {
	delete(s.Surveys, surveyID)
	return nil
}

func (s *StubSurveyStore) ActivateSurvey(ctx context.Context, surveyID int64) (database.Survey, []conditions.Violation, error) {
	survey, exists := s.Surveys[surveyID]
	if !exists {
		return database.Survey{}, nil, custom_errors.ErrNotFound
	}
	if survey.Status != database.SurveyStatusDraft {
		return database.Survey{}, nil, custom_errors.ErrSurveyNotDraft
	}
	if len(s.Violations) > 0 {
		return survey, s.Violations, nil
	}
	survey.Status = database.SurveyStatusActive
	s.Surveys[surveyID] = survey
	return survey, nil, nil
}

func (s *StubSurveyStore) CloseSurvey(ctx context.Context, surveyID int64) (database.Survey, error) {
	survey, exists := s.Surveys[surveyID]
	if !exists {
		return database.Survey{}, custom_errors.ErrNotFound
	}
	if survey.Status != database.SurveyStatusActive {
		return database.Survey{}, custom_errors.ErrSurveyNotActive
	}
	survey.Status = database.SurveyStatusClosed
	s.Surveys[surveyID] = survey
	return survey, nil
}

func (s *StubSurveyStore) CreateSection(ctx context.Context, params database.CreateSectionParams) (database.SurveySection, error) {
	if s.ShouldFailSection {
		return database.SurveySection{}, custom_errors.ErrConflict
	}
	section := database.SurveySection{
		ID:                  int64(len(s.Sections) + 1),
		SurveyID:            params.SurveyID,
		Title:               params.Title,
		SortOrder:           params.SortOrder,
		ConditionQuestionID: params.ConditionQuestionID,
		ConditionValue:      params.ConditionValue,
	}
	s.Sections[section.ID] = section
	return section, nil
}

func (s *StubSurveyStore) UpdateSection(ctx context.Context, params database.UpdateSectionParams) (database.SurveySection, error) {
	section, exists := s.Sections[params.ID]
	if !exists {
		return database.SurveySection{}, custom_errors.ErrNotFound
	}
	return section, nil
}

func (s *StubSurveyStore) DeleteSection(ctx context.Context, sectionID int64) error {
	delete(s.Sections, sectionID)
	return nil
}

func (s *StubSurveyStore) CreateQuestion(ctx context.Context, params database.CreateQuestionParams) (database.SurveyQuestion, error) {
	return database.SurveyQuestion{ID: 1, SectionID: params.SectionID, QuestionText: params.QuestionText}, nil
}

func (s *StubSurveyStore) UpdateQuestion(ctx context.Context, params database.UpdateQuestionParams) (database.SurveyQuestion, error) {
	return database.SurveyQuestion{ID: params.ID}, nil
}

func (s *StubSurveyStore) DeleteQuestion(ctx context.Context, questionID int64) error {
	return nil
}

func (s *StubSurveyStore) CreateQuestionOption(ctx context.Context, params database.CreateQuestionOptionParams) (database.QuestionOption, error) {
	return database.QuestionOption{ID: 1, QuestionID: params.QuestionID, OptionValue: params.OptionValue}, nil
}

func (s *StubSurveyStore) GetOptionsByQuestionID(ctx context.Context, questionID int64) ([]database.QuestionOption, error) {
	return nil, nil
}

func (s *StubSurveyStore) UpdateQuestionOption(ctx context.Context, params database.UpdateQuestionOptionParams) (database.QuestionOption, error) {
	return database.QuestionOption{ID: params.ID}, nil
}

func (s *StubSurveyStore) DeleteQuestionOption(ctx context.Context, optionID int64) error {
	return nil
}

// ============================================================================
// Tests
// ============================================================================

func TestCreateSurveyHandler(t *testing.T) {
	t.Run("creates a survey in draft status", func(t *testing.T) {
		store := NewStubSurveyStore()
		handler := &surveys.Handler{Store: store}

		data := []byte(`{"name": "Intake Assessment"}`)

		req := authenticatedRequest(http.MethodPost, "/surveys", data)
		rec := httptest.NewRecorder()

		handler.CreateSurveyHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusCreated)

		if len(store.Surveys) != 1 {
			t.Fatalf("expected 1 survey in store, got %d", len(store.Surveys))
		}
		if store.Surveys[1].Status != database.SurveyStatusDraft {
			t.Errorf("status = %q, want %q", store.Surveys[1].Status, database.SurveyStatusDraft)
		}
	})

	t.Run("returns 400 when the name is missing", func(t *testing.T) {
		handler := &surveys.Handler{Store: NewStubSurveyStore()}

		req := authenticatedRequest(http.MethodPost, "/surveys", []byte(`{}`))
		rec := httptest.NewRecorder()

		handler.CreateSurveyHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})
}

func TestActivateSurveyHandler(t *testing.T) {
	t.Run("activates a clean draft survey", func(t *testing.T) {
		store := NewStubSurveyStore()
		store.Surveys[1] = database.Survey{ID: 1, Name: "Intake Assessment", Status: database.SurveyStatusDraft}
		handler := &surveys.Handler{Store: store}

		req := authenticatedRequest(http.MethodPost, "/surveys/1/activate", nil)
		req = withURLParam(req, "surveyID", "1")
		rec := httptest.NewRecorder()

		handler.ActivateSurveyHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusOK)

		if store.Surveys[1].Status != database.SurveyStatusActive {
			t.Errorf("status = %q, want %q", store.Surveys[1].Status, database.SurveyStatusActive)
		}
	})

	t.Run("returns every condition violation and keeps the survey in draft", func(t *testing.T) {
		store := NewStubSurveyStore()
		store.Surveys[1] = database.Survey{ID: 1, Name: "Intake Assessment", Status: database.SurveyStatusDraft}
		store.Violations = []conditions.Violation{
			{SectionID: 2, Title: "Employment", Reason: "condition references unknown question 99"},
			{SectionID: 3, Title: "Housing", Reason: "condition question 5 must belong to an earlier section"},
		}
		handler := &surveys.Handler{Store: store}

		req := authenticatedRequest(http.MethodPost, "/surveys/1/activate", nil)
		req = withURLParam(req, "surveyID", "1")
		rec := httptest.NewRecorder()

		handler.ActivateSurveyHandler(rec, req)

		var got struct {
			Data []conditions.Violation `json:"data"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &got)

		assertResponseCode(t, rec.Code, http.StatusUnprocessableEntity)

		if len(got.Data) != 2 {
			t.Fatalf("expected 2 violations, got %d", len(got.Data))
		}
		if store.Surveys[1].Status != database.SurveyStatusDraft {
			t.Errorf("status = %q, want %q", store.Surveys[1].Status, database.SurveyStatusDraft)
		}
	})

	t.Run("returns 409 when the survey already left draft", func(t *testing.T) {
		store := NewStubSurveyStore()
		store.Surveys[1] = database.Survey{ID: 1, Name: "Intake Assessment", Status: database.SurveyStatusActive}
		handler := &surveys.Handler{Store: store}

		req := authenticatedRequest(http.MethodPost, "/surveys/1/activate", nil)
		req = withURLParam(req, "surveyID", "1")
		rec := httptest.NewRecorder()

		handler.ActivateSurveyHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusConflict)
	})
}

func TestCloseSurveyHandler(t *testing.T) {
	t.Run("closes an active survey", func(t *testing.T) {
		store := NewStubSurveyStore()
		store.Surveys[1] = database.Survey{ID: 1, Name: "Intake Assessment", Status: database.SurveyStatusActive}
		handler := &surveys.Handler{Store: store}

		req := authenticatedRequest(http.MethodPost, "/surveys/1/close", nil)
		req = withURLParam(req, "surveyID", "1")
		rec := httptest.NewRecorder()

		handler.CloseSurveyHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusOK)

		if store.Surveys[1].Status != database.SurveyStatusClosed {
			t.Errorf("status = %q, want %q", store.Surveys[1].Status, database.SurveyStatusClosed)
		}
	})

	t.Run("returns 409 when the survey is not active", func(t *testing.T) {
		store := NewStubSurveyStore()
		store.Surveys[1] = database.Survey{ID: 1, Name: "Intake Assessment", Status: database.SurveyStatusDraft}
		handler := &surveys.Handler{Store: store}

		req := authenticatedRequest(http.MethodPost, "/surveys/1/close", nil)
		req = withURLParam(req, "surveyID", "1")
		rec := httptest.NewRecorder()

		handler.CloseSurveyHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusConflict)
	})
}

func TestCreateSectionHandler(t *testing.T) {
	t.Run("returns 409 for a duplicate sort order", func(t *testing.T) {
		store := NewStubSurveyStore()
		store.Surveys[1] = database.Survey{ID: 1, Name: "Intake Assessment", Status: database.SurveyStatusDraft}
		store.ShouldFailSection = true
		handler := &surveys.Handler{Store: store}

		data := []byte(`{"title": "Background", "sort_order": 1}`)

		req := authenticatedRequest(http.MethodPost, "/surveys/1/sections", data)
		req = withURLParam(req, "surveyID", "1")
		rec := httptest.NewRecorder()

		handler.CreateSectionHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusConflict)
	})
}
