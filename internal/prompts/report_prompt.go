package prompts

import (
	"riderquiz/internal/models/quiz_models"
)

type TraitLine struct {
	Name  quiz_models.SecondaryTrait
	Value float64
}

type AnsweredItem struct {
	Question  string
	Answer    string
	Weightage int
}

type CategoryAnswers struct {
	Category quiz_models.QuestionCategory
	Items    []AnsweredItem
}

type ReportPromptData struct {
	PrimaryType          quiz_models.RiderType
	SecondaryType        quiz_models.RiderType
	Consistency          float64
	Traits               []TraitLine
	Categories           []CategoryAnswers
	TrainingPlanSections []string
	VisionSections       []string
	BulletsPerSection    int
}

// NewReportPromptData lays the scored quiz out for the report template:
// traits in their fixed order, answers grouped by category in category
// order, empty categories omitted.
func NewReportPromptData(scoring quiz_models.ScoringResult, pairs []quiz_models.AnsweredQuestion) ReportPromptData {
	data := ReportPromptData{
		PrimaryType:          scoring.PrimaryType,
		SecondaryType:        scoring.SecondaryType,
		Consistency:          scoring.Consistency,
		TrainingPlanSections: TrainingPlanSections,
		VisionSections:       VisionSections,
		BulletsPerSection:    BulletsPerSection,
	}

	for _, trait := range quiz_models.SecondaryTraits {
		data.Traits = append(data.Traits, TraitLine{Name: trait, Value: scoring.Traits[trait]})
	}

	for _, category := range quiz_models.QuestionCategories {
		group := CategoryAnswers{Category: category}
		for _, pair := range pairs {
			if pair.Question.Category != category {
				continue
			}
			group.Items = append(group.Items, AnsweredItem{
				Question:  pair.Question.Text,
				Answer:    pair.Answer.Text,
				Weightage: pair.Question.Weightage,
			})
		}
		if len(group.Items) > 0 {
			data.Categories = append(data.Categories, group)
		}
	}

	return data
}
