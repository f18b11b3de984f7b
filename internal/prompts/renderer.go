package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"riderquiz/internal/models/quiz_models"
)

//go:embed templates/*.tmpl templates/system.txt
var templateFS embed.FS

type TemplateName string

const (
	ReportTemplate TemplateName = "report.tmpl"
	ChatTemplate   TemplateName = "chat.tmpl"
)

// BulletsPerSection is how many bullets every report sub-section must carry.
const BulletsPerSection = 3

var (
	TrainingPlanSections = []string{"Cele krótkoterminowe", "Plan treningowy", "Mierniki postępu"}
	VisionSections       = []string{"Ścieżka rozwoju", "Specjalizacje", "Cele długoterminowe"}
)

var bulletHints = map[string]string{
	"Cele krótkoterminowe": "Konkretny cel",
	"Plan treningowy":      "Konkretne ćwiczenie lub aktywność",
	"Mierniki postępu":     "Konkretny miernik",
	"Ścieżka rozwoju":      "Pełne zdanie opisujące etap rozwoju",
	"Specjalizacje":        "Pełne zdanie opisujące specjalizację",
	"Cele długoterminowe":  "Pełne zdanie opisujące cel",
}

// Renderer turns prompt data into model input. Templates are parsed once.
type Renderer struct {
	templates    *template.Template
	systemPrompt string
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"pct":   formatPercent,
		"upper": func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
		"join":  strings.Join,
		"speaker": func(role quiz_models.ChatRole) string {
			if role == quiz_models.ChatRoleUser {
				return "Użytkownik"
			}
			return "System"
		},
		"bulletHint": func(section string) string {
			if hint, ok := bulletHints[section]; ok {
				return hint
			}
			return "Punkt"
		},
	}

	tmpl, err := template.New("prompts").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse prompt templates: %w", err)
	}

	system, err := templateFS.ReadFile("templates/system.txt")
	if err != nil {
		return nil, fmt.Errorf("read system prompt: %w", err)
	}

	return &Renderer{templates: tmpl, systemPrompt: strings.TrimSpace(string(system))}, nil
}

func (r *Renderer) Render(name TemplateName, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(name), data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// SystemPrompt is the instruction sent as the model's system role.
func (r *Renderer) SystemPrompt() string {
	return r.systemPrompt
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
