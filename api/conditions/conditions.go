package conditions

import (
	"fmt"
	"strings"
)

// Question types mirror the survey_questions.question_type column.
const (
	TypeShortText      = "short_text"
	TypeLongText       = "long_text"
	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"
	TypeYesNo          = "yes_no"
	TypeRatingScale    = "rating_scale"
)

// MultiValueSeparator joins the selected values of a multiple_choice answer
// into the single stored string. Conditions compare against that joined string
// byte-for-byte; there is no "contains" operator.
const MultiValueSeparator = ","

type Question struct {
	ID        int64
	SectionID int64
	Text      string
	Type      string
	SortOrder int32
	Required  bool
	// Options holds the option values for choice and scale types.
	Options []string
}

type Section struct {
	ID        int64
	Title     string
	SortOrder int32
	// ConditionQuestionID is zero for unconditional sections.
	ConditionQuestionID int64
	ConditionValue      string
	Questions           []Question
}

// VisibleSections computes the set of sections to render given the answers
// collected so far. A section without a condition is always visible; a
// conditioned section is visible only when the trigger question has an answer
// exactly equal to the condition value. Each section is judged on answers
// alone, so the result does not depend on evaluation order and repeated calls
// with the same inputs agree.
//
// Structurally invalid conditions (dangling or forward references) are not
// detected here; ValidateActivation traps those before a survey goes live.
func VisibleSections(sections []Section, answers map[int64]string) map[int64]bool {
	visible := make(map[int64]bool, len(sections))
	for _, section := range sections {
		if section.ConditionQuestionID == 0 {
			visible[section.ID] = true
			continue
		}
		answer, ok := answers[section.ConditionQuestionID]
		visible[section.ID] = ok && answer == section.ConditionValue
	}
	return visible
}

// RequiredMissing returns the required questions inside visible sections that
// have no non-empty answer. Questions in hidden sections are never reported.
func RequiredMissing(sections []Section, visible map[int64]bool, answers map[int64]string) []Question {
	var missing []Question
	for _, section := range sections {
		if !visible[section.ID] {
			continue
		}
		for _, question := range section.Questions {
			if !question.Required {
				continue
			}
			if strings.TrimSpace(answers[question.ID]) == "" {
				missing = append(missing, question)
			}
		}
	}
	return missing
}

// HiddenQuestionIDs lists the questions belonging to sections that are not in
// the visible set. Callers use it to prune stale partial answers.
func HiddenQuestionIDs(sections []Section, visible map[int64]bool) []int64 {
	var ids []int64
	for _, section := range sections {
		if visible[section.ID] {
			continue
		}
		for _, question := range section.Questions {
			ids = append(ids, question.ID)
		}
	}
	return ids
}

// PossibleValues returns the answer values a question can take. The second
// return is false for free-text types, whose values are unconstrained.
func PossibleValues(question Question) ([]string, bool) {
	switch question.Type {
	case TypeYesNo:
		return []string{"0", "1"}, true
	case TypeSingleChoice, TypeMultipleChoice, TypeRatingScale:
		return question.Options, true
	default:
		return nil, false
	}
}

// A Violation describes one section whose condition would misbehave on a live
// survey.
type Violation struct {
	SectionID int64  `json:"section_id"`
	Title     string `json:"title"`
	Reason    string `json:"reason"`
}

// ValidateActivation checks every conditioned section before the draft-to-
// active transition: the trigger question must exist, must live in a strictly
// earlier section, and the condition value must be one of the question's
// possible values (free-text triggers accept anything). All violations are
// collected in one pass so an administrator can fix them together.
func ValidateActivation(sections []Section) []Violation {
	questionByID := make(map[int64]Question)
	sectionOrder := make(map[int64]int32)
	for _, section := range sections {
		sectionOrder[section.ID] = section.SortOrder
		for _, question := range section.Questions {
			questionByID[question.ID] = question
		}
	}

	var violations []Violation
	for _, section := range sections {
		if section.ConditionQuestionID == 0 {
			continue
		}

		trigger, ok := questionByID[section.ConditionQuestionID]
		if !ok {
			violations = append(violations, Violation{
				SectionID: section.ID,
				Title:     section.Title,
				Reason:    fmt.Sprintf("condition references unknown question %d", section.ConditionQuestionID),
			})
			continue
		}

		if sectionOrder[trigger.SectionID] >= section.SortOrder {
			violations = append(violations, Violation{
				SectionID: section.ID,
				Title:     section.Title,
				Reason:    fmt.Sprintf("condition question %d must belong to an earlier section", trigger.ID),
			})
			continue
		}

		values, constrained := PossibleValues(trigger)
		if !constrained {
			continue
		}
		found := false
		for _, value := range values {
			if value == section.ConditionValue {
				found = true
				break
			}
		}
		if !found {
			violations = append(violations, Violation{
				SectionID: section.ID,
				Title:     section.Title,
				Reason:    fmt.Sprintf("condition value %q is not a possible answer of question %d", section.ConditionValue, trigger.ID),
			})
		}
	}

	return violations
}
