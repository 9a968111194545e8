package conditions_test

import (
	"reflect"
	"testing"

	"github.com/casenote/casenote/api/conditions"
)

func twoSectionSurvey() []conditions.Section {
	return []conditions.Section{
		{
			ID:        1,
			Title:     "Intake",
			SortOrder: 0,
			Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeSingleChoice, Required: true, Options: []string{"yes", "no"}},
			},
		},
		{
			ID:                  2,
			Title:               "Follow up",
			SortOrder:           1,
			ConditionQuestionID: 10,
			ConditionValue:      "yes",
			Questions: []conditions.Question{
				{ID: 20, SectionID: 2, Type: conditions.TypeShortText, Required: true},
			},
		},
	}
}

func assertVisible(t *testing.T, visible map[int64]bool, sectionID int64, want bool) {
	t.Helper()
	if visible[sectionID] != want {
		t.Errorf("section %d visible = %v, want %v", sectionID, visible[sectionID], want)
	}
}

func TestVisibleSections(t *testing.T) {
	sections := twoSectionSurvey()

	t.Run("unconditional section is always visible", func(t *testing.T) {
		visible := conditions.VisibleSections(sections, map[int64]string{})
		assertVisible(t, visible, 1, true)
	})

	t.Run("unanswered trigger hides the section", func(t *testing.T) {
		visible := conditions.VisibleSections(sections, map[int64]string{})
		assertVisible(t, visible, 2, false)
	})

	t.Run("matching answer shows the section", func(t *testing.T) {
		visible := conditions.VisibleSections(sections, map[int64]string{10: "yes"})
		assertVisible(t, visible, 1, true)
		assertVisible(t, visible, 2, true)
	})

	t.Run("non-matching answer hides the section", func(t *testing.T) {
		visible := conditions.VisibleSections(sections, map[int64]string{10: "no"})
		assertVisible(t, visible, 2, false)
	})

	t.Run("match is exact, not prefix", func(t *testing.T) {
		scale := []conditions.Section{
			{ID: 1, SortOrder: 0, Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeRatingScale, Options: []string{"1", "5", "10"}},
			}},
			{ID: 2, SortOrder: 1, ConditionQuestionID: 10, ConditionValue: "1"},
		}

		visible := conditions.VisibleSections(scale, map[int64]string{10: "10"})
		assertVisible(t, visible, 2, false)

		visible = conditions.VisibleSections(scale, map[int64]string{10: "1"})
		assertVisible(t, visible, 2, true)
	})

	t.Run("multi-select answers compare as the joined string", func(t *testing.T) {
		multi := []conditions.Section{
			{ID: 1, SortOrder: 0, Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeMultipleChoice, Options: []string{"a", "b", "c"}},
			}},
			{ID: 2, SortOrder: 1, ConditionQuestionID: 10, ConditionValue: "a"},
		}

		// "a" selected together with "b" does not satisfy condition "a".
		visible := conditions.VisibleSections(multi, map[int64]string{10: "a" + conditions.MultiValueSeparator + "b"})
		assertVisible(t, visible, 2, false)

		visible = conditions.VisibleSections(multi, map[int64]string{10: "a"})
		assertVisible(t, visible, 2, true)
	})

	t.Run("evaluation is idempotent", func(t *testing.T) {
		answers := map[int64]string{10: "yes"}
		first := conditions.VisibleSections(sections, answers)
		second := conditions.VisibleSections(sections, answers)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("repeated evaluation disagrees: %v vs %v", first, second)
		}
	})

	t.Run("forward reference evaluates without panicking", func(t *testing.T) {
		broken := []conditions.Section{
			{ID: 1, SortOrder: 0, ConditionQuestionID: 20, ConditionValue: "x"},
			{ID: 2, SortOrder: 1, Questions: []conditions.Question{
				{ID: 20, SectionID: 2, Type: conditions.TypeShortText},
			}},
		}

		visible := conditions.VisibleSections(broken, map[int64]string{20: "x"})
		assertVisible(t, visible, 1, true)
	})
}

func TestRequiredMissing(t *testing.T) {
	sections := twoSectionSurvey()

	t.Run("required question in hidden section is never reported", func(t *testing.T) {
		answers := map[int64]string{10: "no"}
		visible := conditions.VisibleSections(sections, answers)

		missing := conditions.RequiredMissing(sections, visible, answers)
		for _, question := range missing {
			if question.ID == 20 {
				t.Errorf("question 20 reported missing despite hidden section")
			}
		}
	})

	t.Run("required question in visible section with no answer is reported", func(t *testing.T) {
		answers := map[int64]string{10: "yes"}
		visible := conditions.VisibleSections(sections, answers)

		missing := conditions.RequiredMissing(sections, visible, answers)
		if len(missing) != 1 || missing[0].ID != 20 {
			t.Errorf("missing = %v, want question 20", missing)
		}
	})

	t.Run("whitespace-only answers count as missing", func(t *testing.T) {
		answers := map[int64]string{10: "yes", 20: "   "}
		visible := conditions.VisibleSections(sections, answers)

		missing := conditions.RequiredMissing(sections, visible, answers)
		if len(missing) != 1 || missing[0].ID != 20 {
			t.Errorf("missing = %v, want question 20", missing)
		}
	})

	t.Run("optional questions are not reported", func(t *testing.T) {
		optional := []conditions.Section{
			{ID: 1, SortOrder: 0, Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeLongText, Required: false},
			}},
		}
		visible := conditions.VisibleSections(optional, nil)

		if missing := conditions.RequiredMissing(optional, visible, nil); len(missing) != 0 {
			t.Errorf("missing = %v, want none", missing)
		}
	})
}

func TestHiddenQuestionIDs(t *testing.T) {
	sections := twoSectionSurvey()

	visible := conditions.VisibleSections(sections, map[int64]string{10: "no"})
	ids := conditions.HiddenQuestionIDs(sections, visible)
	if len(ids) != 1 || ids[0] != 20 {
		t.Errorf("hidden ids = %v, want [20]", ids)
	}

	visible = conditions.VisibleSections(sections, map[int64]string{10: "yes"})
	if ids := conditions.HiddenQuestionIDs(sections, visible); len(ids) != 0 {
		t.Errorf("hidden ids = %v, want none", ids)
	}
}

func TestPossibleValues(t *testing.T) {
	t.Run("yes_no has fixed values", func(t *testing.T) {
		values, constrained := conditions.PossibleValues(conditions.Question{Type: conditions.TypeYesNo})
		if !constrained {
			t.Fatal("yes_no should be constrained")
		}
		if !reflect.DeepEqual(values, []string{"0", "1"}) {
			t.Errorf("values = %v, want [0 1]", values)
		}
	})

	t.Run("choice types expose their options", func(t *testing.T) {
		question := conditions.Question{Type: conditions.TypeSingleChoice, Options: []string{"a", "b"}}
		values, constrained := conditions.PossibleValues(question)
		if !constrained || !reflect.DeepEqual(values, []string{"a", "b"}) {
			t.Errorf("values = %v constrained = %v", values, constrained)
		}
	})

	t.Run("text types are unconstrained", func(t *testing.T) {
		if _, constrained := conditions.PossibleValues(conditions.Question{Type: conditions.TypeShortText}); constrained {
			t.Error("short_text should be unconstrained")
		}
		if _, constrained := conditions.PossibleValues(conditions.Question{Type: conditions.TypeLongText}); constrained {
			t.Error("long_text should be unconstrained")
		}
	})
}

func TestValidateActivation(t *testing.T) {
	t.Run("valid configuration passes", func(t *testing.T) {
		if violations := conditions.ValidateActivation(twoSectionSurvey()); len(violations) != 0 {
			t.Errorf("violations = %v, want none", violations)
		}
	})

	t.Run("forward reference blocks activation", func(t *testing.T) {
		sections := []conditions.Section{
			{ID: 1, SortOrder: 0},
			{ID: 2, SortOrder: 1, ConditionQuestionID: 30, ConditionValue: "1"},
			{ID: 3, SortOrder: 2, Questions: []conditions.Question{
				{ID: 30, SectionID: 3, Type: conditions.TypeYesNo},
			}},
		}

		violations := conditions.ValidateActivation(sections)
		if len(violations) != 1 {
			t.Fatalf("violations = %v, want one", violations)
		}
		if violations[0].SectionID != 2 {
			t.Errorf("violation section = %d, want 2", violations[0].SectionID)
		}
	})

	t.Run("same-section reference blocks activation", func(t *testing.T) {
		sections := []conditions.Section{
			{ID: 1, SortOrder: 0, ConditionQuestionID: 10, ConditionValue: "1", Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeYesNo},
			}},
		}

		if violations := conditions.ValidateActivation(sections); len(violations) != 1 {
			t.Errorf("violations = %v, want one", violations)
		}
	})

	t.Run("unknown question blocks activation", func(t *testing.T) {
		sections := []conditions.Section{
			{ID: 1, SortOrder: 0},
			{ID: 2, SortOrder: 1, ConditionQuestionID: 999, ConditionValue: "1"},
		}

		violations := conditions.ValidateActivation(sections)
		if len(violations) != 1 || violations[0].SectionID != 2 {
			t.Errorf("violations = %v, want one for section 2", violations)
		}
	})

	t.Run("condition value outside the option set blocks activation", func(t *testing.T) {
		sections := []conditions.Section{
			{ID: 1, SortOrder: 0, Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeSingleChoice, Options: []string{"low", "high"}},
			}},
			{ID: 2, SortOrder: 1, ConditionQuestionID: 10, ConditionValue: "medium"},
		}

		if violations := conditions.ValidateActivation(sections); len(violations) != 1 {
			t.Errorf("violations = %v, want one", violations)
		}
	})

	t.Run("free text triggers accept any condition value", func(t *testing.T) {
		sections := []conditions.Section{
			{ID: 1, SortOrder: 0, Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeShortText},
			}},
			{ID: 2, SortOrder: 1, ConditionQuestionID: 10, ConditionValue: "anything at all"},
		}

		if violations := conditions.ValidateActivation(sections); len(violations) != 0 {
			t.Errorf("violations = %v, want none", violations)
		}
	})

	t.Run("all violations are reported in one pass", func(t *testing.T) {
		sections := []conditions.Section{
			{ID: 1, SortOrder: 0, Questions: []conditions.Question{
				{ID: 10, SectionID: 1, Type: conditions.TypeYesNo},
			}},
			{ID: 2, SortOrder: 1, ConditionQuestionID: 999, ConditionValue: "1"},
			{ID: 3, SortOrder: 2, ConditionQuestionID: 10, ConditionValue: "maybe"},
		}

		violations := conditions.ValidateActivation(sections)
		if len(violations) != 2 {
			t.Fatalf("violations = %v, want two", violations)
		}
	})
}
