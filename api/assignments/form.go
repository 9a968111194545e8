package assignments

import (
	"strings"

	"github.com/casenote/casenote/api/conditions"
	"github.com/casenote/casenote/database"
	"github.com/shopspring/decimal"
)

// buildFormView renders the sections a participant should currently see,
// pre-filled with their saved answers. Hidden sections are left out entirely.
func buildFormView(assignment database.Assignment, model SurveyModel, answers map[int64]string) FormView {
	visible := conditions.VisibleSections(model.Sections, answers)

	form := FormView{
		AssignmentID: assignment.ID,
		SurveyName:   model.Survey.Name,
		Status:       string(assignment.Status),
		Sections:     []SectionView{},
		Progress:     computeProgress(model, answers),
	}

	for _, section := range model.Sections {
		if !visible[section.ID] {
			continue
		}

		view := SectionView{
			ID:        section.ID,
			Title:     section.Title,
			SortOrder: section.SortOrder,
			Questions: []QuestionView{},
		}

		for _, question := range section.Questions {
			questionView := QuestionView{
				ID:         question.ID,
				Text:       question.Text,
				Type:       question.Type,
				SortOrder:  question.SortOrder,
				IsRequired: question.Required,
				Value:      answers[question.ID],
			}
			for _, option := range model.Options[question.ID] {
				questionView.Options = append(questionView.Options, OptionView{
					Value: option.OptionValue,
					Label: option.OptionLabel,
				})
			}
			view.Questions = append(view.Questions, questionView)
		}

		form.Sections = append(form.Sections, view)
	}

	return form
}

// computeProgress counts answered questions against the questions in visible
// sections only, so conditional sections that never open do not drag the
// percentage down.
func computeProgress(model SurveyModel, answers map[int64]string) Progress {
	visible := conditions.VisibleSections(model.Sections, answers)

	var total, answered int
	for _, section := range model.Sections {
		if !visible[section.ID] {
			continue
		}
		for _, question := range section.Questions {
			total++
			if strings.TrimSpace(answers[question.ID]) != "" {
				answered++
			}
		}
	}

	percentage := decimal.Zero
	if total > 0 {
		percentage = decimal.NewFromInt(int64(answered)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return Progress{
		TotalQuestions:      total,
		AnsweredQuestions:   answered,
		PercentageCompleted: percentage,
	}
}

// computeScore sums the option scores of the answers in visible sections.
// Multiple choice answers contribute the score of every selected option.
func computeScore(model SurveyModel, answers map[int64]string, visible map[int64]bool) decimal.Decimal {
	total := decimal.Zero

	for _, section := range model.Sections {
		if !visible[section.ID] {
			continue
		}
		for _, question := range section.Questions {
			answer, ok := answers[question.ID]
			if !ok || answer == "" {
				continue
			}

			scores := make(map[string]decimal.Decimal)
			for _, option := range model.Options[question.ID] {
				if option.Score.Valid && option.Score.Int != nil {
					scores[option.OptionValue] = decimal.NewFromBigInt(option.Score.Int, option.Score.Exp)
				}
			}
			if len(scores) == 0 {
				continue
			}

			if question.Type == conditions.TypeMultipleChoice {
				for _, value := range strings.Split(answer, conditions.MultiValueSeparator) {
					if score, ok := scores[value]; ok {
						total = total.Add(score)
					}
				}
				continue
			}

			if score, ok := scores[answer]; ok {
				total = total.Add(score)
			}
		}
	}

	return total
}

// questionIndex maps every question in the survey to its section.
func questionIndex(model SurveyModel) map[int64]conditions.Question {
	index := make(map[int64]conditions.Question)
	for _, section := range model.Sections {
		for _, question := range section.Questions {
			index[question.ID] = question
		}
	}
	return index
}

func missingQuestions(missing []conditions.Question) []MissingQuestion {
	out := make([]MissingQuestion, 0, len(missing))
	for _, question := range missing {
		out = append(out, MissingQuestion{
			QuestionID: question.ID,
			SectionID:  question.SectionID,
			Text:       question.Text,
		})
	}
	return out
}
