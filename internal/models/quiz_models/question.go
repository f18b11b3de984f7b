package quiz_models

type QuestionCategory string

const (
	CategoryPersonality  QuestionCategory = "personality"
	CategoryTechnical    QuestionCategory = "technical"
	CategoryRelationship QuestionCategory = "relationship"
	CategoryGoals        QuestionCategory = "goals"
	CategoryManagement   QuestionCategory = "management"
)

// QuestionCategories is the order categories are listed in prompts.
var QuestionCategories = []QuestionCategory{
	CategoryPersonality,
	CategoryTechnical,
	CategoryRelationship,
	CategoryGoals,
	CategoryManagement,
}

func (c QuestionCategory) Valid() bool {
	for _, cat := range QuestionCategories {
		if cat == c {
			return true
		}
	}
	return false
}

type Answer struct {
	Text            string                 `json:"text" yaml:"text"`
	Points          map[RiderType]int      `json:"points" yaml:"points"`
	SecondaryTraits map[SecondaryTrait]int `json:"secondary_traits,omitempty" yaml:"secondary_traits"`
	Explanation     string                 `json:"explanation,omitempty" yaml:"explanation"`
}

type Question struct {
	ID        string           `json:"id" yaml:"id"`
	Text      string           `json:"text" yaml:"text"`
	Subtext   string           `json:"subtext,omitempty" yaml:"subtext"`
	Category  QuestionCategory `json:"category" yaml:"category"`
	Weightage int              `json:"weightage" yaml:"weightage"`
	Answers   []Answer         `json:"answers" yaml:"answers"`
}

// AnsweredQuestion pairs a question with the answer picked for it.
type AnsweredQuestion struct {
	Question Question `json:"question"`
	Answer   Answer   `json:"answer"`
}
