package prompts

import (
	"strings"
	"unicode"
)

type FormatKey string

const (
	FormatWeeklyPlan       FormatKey = "weekly_plan"
	FormatWarmupTechnique  FormatKey = "warmup_technique"
	FormatEquipment        FormatKey = "equipment"
	FormatCompetitionPrep  FormatKey = "competition_prep"
	FormatSpecificExercise FormatKey = "specific_exercise"
	FormatGeneral          FormatKey = "general"
)

// ResponseFormat is one fixed answer layout the chat model must fill in.
// Keywords ending in a letter match word prefixes; keywords containing a
// space or hyphen match anywhere in the question.
type ResponseFormat struct {
	Key      FormatKey
	Title    string
	Layout   string
	Keywords []string
}

// ResponseFormats is the closed catalogue. Detection ties resolve to the
// earlier entry; General is the fallback and has no keywords.
var ResponseFormats = []ResponseFormat{
	{
		Key:   FormatWeeklyPlan,
		Title: "PLAN TYGODNIOWY",
		Layout: "Cel tygodnia: [jedno zdanie]\n" +
			"Poniedziałek: [jednostka, czas, intensywność]\n" +
			"Wtorek: [jednostka, czas, intensywność]\n" +
			"Środa: [jednostka, czas, intensywność]\n" +
			"Czwartek: [jednostka, czas, intensywność]\n" +
			"Piątek: [jednostka, czas, intensywność]\n" +
			"Sobota: [jednostka, czas, intensywność]\n" +
			"Niedziela: [odpoczynek lub lekka praca]\n" +
			"Uwagi bezpieczeństwa: [maksymalnie 2 punkty]",
		Keywords: []string{"tydzie", "tygod", "weekly", "week", "harmonogram", "rozkład", "schedule", "plan trening", "training plan", "plan na"},
	},
	{
		Key:   FormatWarmupTechnique,
		Title: "ROZGRZEWKA I TECHNIKA",
		Layout: "Rozgrzewka ([czas w minutach]):\n• [krok 1]\n• [krok 2]\n• [krok 3]\n" +
			"Ćwiczenie techniczne: [opis wykonania]\n" +
			"Najczęstsze błędy: [2-3 błędy]\n" +
			"Korekty: [jak poprawić każdy błąd]",
		Keywords: []string{"rozgrzew", "warm-up", "warm up", "warmup", "technik", "technique", "dosiad", "postawa", "postawy", "postawę", "seat", "posture", "pomoce", "aids"},
	},
	{
		Key:   FormatEquipment,
		Title: "SPRZĘT",
		Layout: "Rekomendowany sprzęt: [lista elementów]\n" +
			"Parametry doboru: [rozmiary, materiały, wymiary]\n" +
			"Dopasowanie do konia: [na co zwrócić uwagę]\n" +
			"Konserwacja: [jak dbać o sprzęt]",
		Keywords: []string{"sprzęt", "sprzet", "siodł", "siodl", "wędzid", "wedzid", "ogłow", "oglow", "czaprak", "ochraniacz", "kask", "kamizel", "equipment", "saddle", "bit", "bridle", "tack", "helmet", "boots"},
	},
	{
		Key:   FormatCompetitionPrep,
		Title: "PRZYGOTOWANIE DO ZAWODÓW",
		Layout: "Harmonogram przed startem: [ostatnie 2 tygodnie]\n" +
			"Rozprężalnia: [przebieg rozgrzewki przed startem]\n" +
			"Przebieg startu: [kluczowe punkty]\n" +
			"Po starcie: [regeneracja konia i jeźdźca]",
		Keywords: []string{"zawod", "zawód", "start", "konkurs", "rozprężal", "rozprezal", "competition", "contest", "event"},
	},
	{
		Key:   FormatSpecificExercise,
		Title: "KONKRETNE ĆWICZENIE",
		Layout: "Nazwa ćwiczenia: [nazwa]\n" +
			"Ustawienie: [odległości, wysokości, liczba drągów]\n" +
			"Wykonanie krok po kroku:\n• [krok 1]\n• [krok 2]\n• [krok 3]\n" +
			"Progresja: [jak zwiększać trudność]\n" +
			"Kryteria poprawności: [po czym poznać dobre wykonanie]",
		Keywords: []string{"ćwiczen", "cwiczen", "exercise", "drill", "gymnastic", "gimnasty", "drąg", "drag", "cavaletti", "szereg"},
	},
	{
		Key:    FormatGeneral,
		Title:  "KONSULTACJA OGÓLNA",
		Layout: "Odpowiedź: [2-4 zdania]\nPraktyczne wskazówki:\n• [wskazówka 1]\n• [wskazówka 2]\n• [wskazówka 3]",
	},
}

func FormatByKey(key FormatKey) (ResponseFormat, bool) {
	for _, f := range ResponseFormats {
		if f.Key == key {
			return f, true
		}
	}
	return ResponseFormat{}, false
}

// DetectFormat picks the format whose keywords occur most often in the
// question. Ties go to the earlier catalogue entry.
func DetectFormat(question string) ResponseFormat {
	text := strings.ToLower(question)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	best := -1
	bestHits := 0
	for i, f := range ResponseFormats {
		hits := 0
		for _, kw := range f.Keywords {
			if keywordMatches(kw, text, words) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}
	if best < 0 {
		general, _ := FormatByKey(FormatGeneral)
		return general
	}
	return ResponseFormats[best]
}

func keywordMatches(keyword, text string, words []string) bool {
	if strings.ContainsAny(keyword, " -") {
		return strings.Contains(text, keyword)
	}
	for _, w := range words {
		if strings.HasPrefix(w, keyword) {
			return true
		}
	}
	return false
}
