package services

import (
	"math"
	"sort"

	"riderquiz/internal/models/quiz_models"
)

// maxTraitWeightPerAnswer is the largest trait weight an answer normally
// carries. Trait percentages are normalized against it, so values above 100
// are possible when the bank uses heavier weights.
const maxTraitWeightPerAnswer = 4

type ScoringServiceInterface interface {
	Score(pairs []quiz_models.AnsweredQuestion) quiz_models.ScoringResult
}

type ScoringService struct{}

func NewScoringService() ScoringServiceInterface {
	return &ScoringService{}
}

type rankedType struct {
	riderType  quiz_models.RiderType
	percentage float64
	floor      int
	decimal    float64
}

func (s *ScoringService) Score(pairs []quiz_models.AnsweredQuestion) quiz_models.ScoringResult {
	totals := make(map[quiz_models.RiderType]int, len(quiz_models.RiderTypes))
	for _, t := range quiz_models.RiderTypes {
		totals[t] = 0
	}
	for _, pair := range pairs {
		for t, points := range pair.Answer.Points {
			if _, known := totals[t]; known {
				totals[t] += points
			}
		}
	}

	scores, ranking := Normalize(totals)
	primary := ranking[0]
	secondary := ranking[1]

	return quiz_models.ScoringResult{
		PrimaryType:   primary,
		SecondaryType: secondary,
		Consistency:   Consistency(pairs, primary),
		Traits:        TraitPercentages(pairs),
		Scores:        scores,
		Totals:        totals,
	}
}

// Normalize converts raw totals into integer percentages summing to exactly
// 100 and returns the rider types ranked by share, ties in enumeration order.
// A zero total yields an even split.
func Normalize(totals map[quiz_models.RiderType]int) (quiz_models.NormalizedScores, []quiz_models.RiderType) {
	total := 0
	for _, t := range quiz_models.RiderTypes {
		total += totals[t]
	}

	ranked := make([]rankedType, len(quiz_models.RiderTypes))
	for i, t := range quiz_models.RiderTypes {
		exact := 100.0 / float64(len(quiz_models.RiderTypes))
		if total != 0 {
			exact = float64(totals[t]) / float64(total) * 100
		}
		floor := math.Floor(exact)
		ranked[i] = rankedType{
			riderType:  t,
			percentage: exact,
			floor:      int(floor),
			decimal:    exact - floor,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].percentage > ranked[j].percentage
	})

	ranking := make([]quiz_models.RiderType, len(ranked))
	for i, r := range ranked {
		ranking[i] = r.riderType
	}

	scores := make(quiz_models.NormalizedScores, len(ranked))
	remaining := 100
	for _, r := range ranked {
		scores[r.riderType] = r.floor
		remaining -= r.floor
	}

	// The fractional parts of four shares sum to less than four, so every
	// type gets at most one extra point. The modulo only matters if the
	// rider type set ever grows.
	byDecimal := append([]rankedType(nil), ranked...)
	sort.SliceStable(byDecimal, func(i, j int) bool {
		return byDecimal[i].decimal > byDecimal[j].decimal
	})
	for i := 0; i < remaining; i++ {
		scores[byDecimal[i%len(byDecimal)].riderType]++
	}

	return scores, ranking
}

// Consistency is the share of answers whose points for primary equal the
// answer's best score, as a percentage.
func Consistency(pairs []quiz_models.AnsweredQuestion, primary quiz_models.RiderType) float64 {
	if len(pairs) == 0 {
		return 0
	}

	consistent := 0
	for _, pair := range pairs {
		best := math.MinInt
		for _, t := range quiz_models.RiderTypes {
			if p := pair.Answer.Points[t]; p > best {
				best = p
			}
		}
		if pair.Answer.Points[primary] == best {
			consistent++
		}
	}
	return float64(consistent) / float64(len(pairs)) * 100
}

// TraitPercentages sums trait weights over all answers relative to the
// maximum plausible weight per answer.
func TraitPercentages(pairs []quiz_models.AnsweredQuestion) map[quiz_models.SecondaryTrait]float64 {
	traits := make(map[quiz_models.SecondaryTrait]float64, len(quiz_models.SecondaryTraits))
	for _, trait := range quiz_models.SecondaryTraits {
		traits[trait] = 0
	}
	if len(pairs) == 0 {
		return traits
	}

	for _, pair := range pairs {
		for trait, weight := range pair.Answer.SecondaryTraits {
			if _, known := traits[trait]; known {
				traits[trait] += float64(weight)
			}
		}
	}

	maxPossible := float64(len(pairs) * maxTraitWeightPerAnswer)
	for trait, sum := range traits {
		traits[trait] = sum / maxPossible * 100
	}
	return traits
}
