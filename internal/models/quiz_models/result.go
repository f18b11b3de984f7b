package quiz_models

// NormalizedScores holds integer percentages per rider type. The values
// always sum to exactly 100.
type NormalizedScores map[RiderType]int

type ScoringResult struct {
	PrimaryType   RiderType                  `json:"primary_type"`
	SecondaryType RiderType                  `json:"secondary_type"`
	Consistency   float64                    `json:"consistency"`
	Traits        map[SecondaryTrait]float64 `json:"traits"`
	Scores        NormalizedScores           `json:"scores"`
	Totals        map[RiderType]int          `json:"totals"`
}

type StrengthsAndWeaknesses struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
}

// AIEnhancedResult is the report derived from the generation model output.
// Field names follow the JSON contract the model is asked to produce.
type AIEnhancedResult struct {
	PersonalizedAnalysis    string                 `json:"personalizedAnalysis"`
	DetailedRecommendations []string               `json:"detailedRecommendations"`
	CustomizedTrainingPlan  string                 `json:"customizedTrainingPlan"`
	StrengthsAndWeaknesses  StrengthsAndWeaknesses `json:"strengthsAndWeaknesses"`
	LongTermVision          string                 `json:"longTermVision"`
}

// ReportSection is one titled, bulleted block inside a report text field.
type ReportSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}
