package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riderquiz/internal/models/quiz_models"
	"riderquiz/pkg/utils"
)

func sampleReport() quiz_models.AIEnhancedResult {
	return quiz_models.AIEnhancedResult{
		PersonalizedAnalysis:    "Jesteś ambitnym jeźdźcem nastawionym na wyniki.",
		DetailedRecommendations: []string{"Trenuj gimnastykę na drągach", "Zapisz się na klinikę skokową"},
		CustomizedTrainingPlan:  "Cele krótkoterminowe:\n• Cel 1\n• Cel 2\n• Cel 3",
		StrengthsAndWeaknesses: quiz_models.StrengthsAndWeaknesses{
			Strengths:           []string{"Determinacja", "Odwaga"},
			AreasForImprovement: []string{"Cierpliwość"},
		},
		LongTermVision: "Ścieżka rozwoju:\n• Starty regionalne",
	}
}

func TestParseReportRoundTrip(t *testing.T) {
	want := sampleReport()
	body, err := json.Marshal(want)
	require.NoError(t, err)

	raw := "Oto Twoja analiza:\n```json\n" + string(body) + "\n```\nPowodzenia!"
	got, err := ParseReport(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReportRawNewlinesInStrings(t *testing.T) {
	raw := "{\n" +
		"  \"personalizedAnalysis\": \"Pierwsza linia\nDruga linia\",\n" +
		"  \"detailedRecommendations\": [\"A\"],\n" +
		"  \"customizedTrainingPlan\": \"Plan\twstępny\",\n" +
		"  \"strengthsAndWeaknesses\": {\"strengths\": [\"S\"], \"areasForImprovement\": [\"W\"]},\n" +
		"  \"longTermVision\": \"Wizja\"\n" +
		"}"

	got, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, "Pierwsza linia\nDruga linia", got.PersonalizedAnalysis)
	assert.Equal(t, "Plan wstępny", got.CustomizedTrainingPlan)
}

func TestParseReportUnescapesLiteralNewlines(t *testing.T) {
	raw := `{"personalizedAnalysis": "A\\nB", "customizedTrainingPlan": "P", "longTermVision": "V",
		"detailedRecommendations": ["x\\ny"]}`

	got, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, "A\nB", got.PersonalizedAnalysis)
	assert.Equal(t, []string{"x\ny"}, got.DetailedRecommendations)
}

func TestParseReportBackslashBeforeRawNewline(t *testing.T) {
	raw := "{\"personalizedAnalysis\": \"A\\\nB\", \"customizedTrainingPlan\": \"P\", \"longTermVision\": \"V\"}"

	got, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, "A\\\nB", got.PersonalizedAnalysis)
}

func TestParseReportTrailingCommentWithBraces(t *testing.T) {
	raw := "```json\n" +
		`{"personalizedAnalysis": "A", "customizedTrainingPlan": "P", "longTermVision": "V"}` +
		"\n```\nUwaga: pola {opcjonalne} mogą być puste."

	got, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, "A", got.PersonalizedAnalysis)
}

func TestParseReportDeepRepair(t *testing.T) {
	raw := `{"personalizedAnalysis": "A", "customizedTrainingPlan": "P", "longTermVision": "V", "detailedRecommendations": ["x", "y",],}`

	got, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got.DetailedRecommendations)
}

func TestParseReportCoercesOptionalFields(t *testing.T) {
	raw := `{"personalizedAnalysis": "A", "customizedTrainingPlan": "P", "longTermVision": "V",
		"detailedRecommendations": "not a list",
		"strengthsAndWeaknesses": {"strengths": ["S", 3, null]}}`

	got, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Empty(t, got.DetailedRecommendations)
	assert.NotNil(t, got.DetailedRecommendations)
	assert.Equal(t, []string{"S"}, got.StrengthsAndWeaknesses.Strengths)
	assert.Empty(t, got.StrengthsAndWeaknesses.AreasForImprovement)
}

func TestParseReportRejects(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{"no json", "Przepraszam, nie mogę pomóc.", "no valid JSON found in response"},
		{"missing analysis", `{"customizedTrainingPlan": "P", "longTermVision": "V"}`, "missing or invalid personalizedAnalysis"},
		{"plan wrong type", `{"personalizedAnalysis": "A", "customizedTrainingPlan": ["P"], "longTermVision": "V"}`, "missing or invalid customizedTrainingPlan"},
		{"blank vision", `{"personalizedAnalysis": "A", "customizedTrainingPlan": "P", "longTermVision": "  "}`, "missing or invalid longTermVision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReport(tt.raw)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, utils.ErrParseFailed))

			var perr *utils.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.message, perr.Message)
			assert.Equal(t, tt.raw, perr.Raw)
		})
	}
}

func TestReportSections(t *testing.T) {
	text := "Cele krótkoterminowe:\n" +
		"• Poprawić dosiad w galopie\n" +
		"• Skoki do 90 cm\n" +
		"• Dwa treningi gimnastyczne tygodniowo\n\n" +
		"PLAN TRENINGOWY:\n" +
		"- Poniedziałek: ujeżdżenie\n" +
		"- Środa: drągi\n" +
		"- Piątek: skoki\n\n" +
		"Mierniki postępu: • Czysty przejazd • Stałe tempo • Spokojny koń"

	got := ReportSections(text, []string{"Cele krótkoterminowe", "Plan treningowy", "Mierniki postępu"})

	want := []quiz_models.ReportSection{
		{Title: "Cele krótkoterminowe", Items: []string{"Poprawić dosiad w galopie", "Skoki do 90 cm", "Dwa treningi gimnastyczne tygodniowo"}},
		{Title: "Plan treningowy", Items: []string{"Poniedziałek: ujeżdżenie", "Środa: drągi", "Piątek: skoki"}},
		{Title: "Mierniki postępu", Items: []string{"Czysty przejazd", "Stałe tempo", "Spokojny koń"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestReportSectionsIgnoresTextBeforeFirstHeader(t *testing.T) {
	got := ReportSections("Wstęp bez nagłówka\nSpecjalizacje:\n• Skoki", []string{"Ścieżka rozwoju", "Specjalizacje"})
	require.Len(t, got, 1)
	assert.Equal(t, "Specjalizacje", got[0].Title)
	assert.Equal(t, []string{"Skoki"}, got[0].Items)
}
