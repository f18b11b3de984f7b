package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"riderquiz/internal/models/quiz_models"
	"riderquiz/pkg/utils"
)

// ParseReport turns raw model output into a validated report. The model
// wraps JSON in fences, adds commentary and leaves raw newlines inside
// strings, so several repaired candidates are tried before giving up.
func ParseReport(raw string) (*quiz_models.AIEnhancedResult, error) {
	if _, ok := utils.ExtractJSONObject(raw); !ok {
		return nil, utils.NewParseError("no valid JSON found in response", raw, utils.ErrNoJSONObject)
	}

	decoded, err := decodeCandidates(raw)
	if err != nil {
		zap.L().Debug("report JSON could not be decoded", zap.Error(err), zap.String("raw", raw))
		return nil, utils.NewParseError("invalid JSON in response", raw, err)
	}

	obj, ok := unescapeNewlines(decoded).(map[string]any)
	if !ok {
		return nil, utils.NewParseError("response JSON is not an object", raw, nil)
	}

	report := coerceReport(obj)
	if err := validateReport(report); err != nil {
		return nil, utils.NewParseError(err.Error(), raw, nil)
	}
	return report, nil
}

func decodeCandidates(raw string) (any, error) {
	var candidates []string
	if repaired, err := utils.RepairJSONObject(raw); err == nil {
		candidates = append(candidates, repaired)
	}
	if span, ok := utils.BalancedJSONObject(raw); ok {
		candidates = append(candidates, utils.EscapeControlCharsInStrings(utils.NormalizeJSONText(span)))
	}

	var errs []error
	for _, c := range candidates {
		var v any
		err := json.Unmarshal([]byte(c), &v)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}

	greedy, _ := utils.ExtractJSONObject(raw)
	deep, err := utils.DeepRepairJSON(utils.NormalizeJSONText(greedy))
	if err != nil {
		return nil, errors.Join(append(errs, err)...)
	}
	var v any
	if err := json.Unmarshal([]byte(deep), &v); err != nil {
		return nil, errors.Join(append(errs, err)...)
	}
	return v, nil
}

// unescapeNewlines replaces literal backslash-n sequences left after
// decoding with real newlines, at any depth.
func unescapeNewlines(v any) any {
	switch t := v.(type) {
	case string:
		return strings.ReplaceAll(t, `\n`, "\n")
	case []any:
		for i := range t {
			t[i] = unescapeNewlines(t[i])
		}
		return t
	case map[string]any:
		for k, item := range t {
			t[k] = unescapeNewlines(item)
		}
		return t
	default:
		return v
	}
}

func coerceReport(obj map[string]any) *quiz_models.AIEnhancedResult {
	sw, _ := obj["strengthsAndWeaknesses"].(map[string]any)
	return &quiz_models.AIEnhancedResult{
		PersonalizedAnalysis:    asString(obj["personalizedAnalysis"]),
		DetailedRecommendations: asStringSlice(obj["detailedRecommendations"]),
		CustomizedTrainingPlan:  asString(obj["customizedTrainingPlan"]),
		StrengthsAndWeaknesses: quiz_models.StrengthsAndWeaknesses{
			Strengths:           asStringSlice(sw["strengths"]),
			AreasForImprovement: asStringSlice(sw["areasForImprovement"]),
		},
		LongTermVision: asString(obj["longTermVision"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asStringSlice keeps only the string items; anything else yields an empty
// slice.
func asStringSlice(v any) []string {
	items, ok := v.([]any)
	out := make([]string, 0, len(items))
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func validateReport(r *quiz_models.AIEnhancedResult) error {
	required := []struct {
		name  string
		value string
	}{
		{"personalizedAnalysis", r.PersonalizedAnalysis},
		{"customizedTrainingPlan", r.CustomizedTrainingPlan},
		{"longTermVision", r.LongTermVision},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("missing or invalid %s", f.name)
		}
	}
	return nil
}

var bulletPrefix = regexp.MustCompile(`^\s*(?:[•\-*]|\d+[.)])\s*`)

// ReportSections splits a bulleted report field into its titled parts.
// Headers are matched case-insensitively at line start, with or without a
// trailing colon. Headers missing from text are omitted.
func ReportSections(text string, headers []string) []quiz_models.ReportSection {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var sections []quiz_models.ReportSection
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if title, rest, ok := matchHeader(trimmed, headers); ok {
			sections = append(sections, quiz_models.ReportSection{Title: title, Items: splitBullets(rest)})
			continue
		}
		if len(sections) == 0 {
			continue
		}
		last := &sections[len(sections)-1]
		last.Items = append(last.Items, splitBullets(trimmed)...)
	}
	return sections
}

func matchHeader(line string, headers []string) (string, string, bool) {
	for _, h := range headers {
		if len(line) < len(h) || !strings.EqualFold(line[:len(h)], h) {
			continue
		}
		rest := strings.TrimSpace(line[len(h):])
		if rest != "" && !strings.HasPrefix(rest, ":") {
			continue
		}
		return h, strings.TrimPrefix(rest, ":"), true
	}
	return "", "", false
}

// splitBullets handles both one bullet per line and several bullets run
// together on one line.
func splitBullets(line string) []string {
	items := []string{}
	for _, part := range strings.Split(line, "•") {
		item := strings.TrimSpace(bulletPrefix.ReplaceAllString(part, ""))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
