package prompts

import (
	"riderquiz/internal/models/quiz_models"
)

// ChatGreeting opens the chat once the report is ready.
const ChatGreeting = "Witaj! Jestem Twoim osobistym doradcą jeździeckim. Na podstawie Twojego profilu i analizy mogę odpowiedzieć na pytania dotyczące treningu, rozwoju umiejętności, sprzętu i przygotowania do zawodów. W czym mogę pomóc?"

var Disciplines = []string{
	"SKOKI: wysokości przeszkód, odległości w szeregach, technika najazdu i lądowania",
	"UJEŻDŻENIE: programy i czworoboki, ruchy boczne, zebranie i wydłużenie",
	"WKKW: kondycja konia, kros, łączenie trzech prób",
	"REKREACJA: jazda terenowa, bezpieczeństwo w grupie, relacja z koniem",
	"WESTERN: reining, trail, praca z bydłem i specyfika sprzętu westernowego",
}

type ChatPromptData struct {
	Question    string
	RiderType   quiz_models.RiderType
	Report      quiz_models.AIEnhancedResult
	History     []quiz_models.ChatMessage
	Disciplines []string
	Formats     []ResponseFormat
	Selected    ResponseFormat
}

func NewChatPromptData(question string, report quiz_models.AIEnhancedResult, riderType quiz_models.RiderType, history []quiz_models.ChatMessage) ChatPromptData {
	return ChatPromptData{
		Question:    question,
		RiderType:   riderType,
		Report:      report,
		History:     history,
		Disciplines: Disciplines,
		Formats:     ResponseFormats,
		Selected:    DetectFormat(question),
	}
}
