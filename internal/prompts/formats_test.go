package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     FormatKey
	}{
		{"english weekly plan", "Can you give me a weekly training plan?", FormatWeeklyPlan},
		{"polish weekly plan", "Jak powinien wyglądać mój plan treningowy na ten tydzień?", FormatWeeklyPlan},
		{"warmup", "Jak długo powinna trwać rozgrzewka przed skokami?", FormatWarmupTechnique},
		{"equipment", "Jakie siodło wybrać dla młodego konia?", FormatEquipment},
		{"competition", "Jak przygotować się do pierwszych zawodów?", FormatCompetitionPrep},
		{"exercise", "Podaj ćwiczenie na drągach dla konia, który się spieszy", FormatSpecificExercise},
		{"fallback", "Co sądzisz o moim profilu?", FormatGeneral},
		{"bit is a whole word", "What about a habit of rushing?", FormatGeneral},
		{"empty", "", FormatGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.question).Key)
		})
	}
}

func TestDetectFormatTieUsesCatalogueOrder(t *testing.T) {
	// one equipment keyword and one competition keyword
	got := DetectFormat("kask na zawody")
	assert.Equal(t, FormatEquipment, got.Key)
}

func TestFormatByKey(t *testing.T) {
	f, ok := FormatByKey(FormatCompetitionPrep)
	assert.True(t, ok)
	assert.Equal(t, "PRZYGOTOWANIE DO ZAWODÓW", f.Title)

	_, ok = FormatByKey("poetry")
	assert.False(t, ok)
}
