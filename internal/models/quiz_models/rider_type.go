package quiz_models

type RiderType string

const (
	RiderCompetitive  RiderType = "competitive"
	RiderRecreational RiderType = "recreational"
	RiderTrainer      RiderType = "trainer"
	RiderAdventurous  RiderType = "adventurous"
)

// RiderTypes is the fixed enumeration order. Every tie between rider types
// resolves to the type listed first here.
var RiderTypes = []RiderType{
	RiderCompetitive,
	RiderRecreational,
	RiderTrainer,
	RiderAdventurous,
}

func (r RiderType) Valid() bool {
	for _, t := range RiderTypes {
		if t == r {
			return true
		}
	}
	return false
}

type SecondaryTrait string

const (
	TraitLeadership    SecondaryTrait = "leadership"
	TraitPatience      SecondaryTrait = "patience"
	TraitAnalytical    SecondaryTrait = "analytical"
	TraitEmotional     SecondaryTrait = "emotional"
	TraitRiskTolerance SecondaryTrait = "risk_tolerance"
)

var SecondaryTraits = []SecondaryTrait{
	TraitLeadership,
	TraitPatience,
	TraitAnalytical,
	TraitEmotional,
	TraitRiskTolerance,
}

func (s SecondaryTrait) Valid() bool {
	for _, t := range SecondaryTraits {
		if t == s {
			return true
		}
	}
	return false
}

// RiderTypeProfile is the static description shown next to the scores.
type RiderTypeProfile struct {
	Type             RiderType `json:"type" yaml:"type"`
	Title            string    `json:"title" yaml:"title"`
	Description      string    `json:"description" yaml:"description"`
	Characteristics  []string  `json:"characteristics" yaml:"characteristics"`
	Strengths        []string  `json:"strengths" yaml:"strengths"`
	Recommendations  []string  `json:"recommendations" yaml:"recommendations"`
	HorsePreferences []string  `json:"horse_preferences" yaml:"horse_preferences"`
	TrainingStyle    []string  `json:"training_style" yaml:"training_style"`
}
