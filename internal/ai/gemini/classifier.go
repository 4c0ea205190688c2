package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/licitops/secop-scout/internal/matching"
	"github.com/licitops/secop-scout/internal/secop"
	"github.com/licitops/secop-scout/internal/util"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Classifier asks Gemini for per-tender classification hints. Fields the
// model does not answer stay nil so the rule-based values remain in charge.
type Classifier struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewClassifier(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Classifier {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Classifier{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Classify sends one batch of tenders to Gemini and returns hints keyed by
// tender id. Callers bound the batch size; this method sends whatever it is
// given in a single request.
func (c *Classifier) Classify(ctx context.Context, tenders []*secop.Tender) (map[string]*matching.Hint, error) {
	if len(tenders) == 0 {
		return map[string]*matching.Hint{}, nil
	}

	payload := make([]map[string]any, 0, len(tenders))
	for _, tender := range tenders {
		if tender == nil || tender.ID == "" {
			continue
		}
		payload = append(payload, map[string]any{
			"id":            tender.ID,
			"description":   tender.Description,
			"contract_type": tender.ContractType,
			"phase":         tender.Phase,
			"status":        tender.Status,
		})
	}

	tendersJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tenders payload: %w", err)
	}

	prompt := buildPrompt(string(tendersJSON))

	c.logger.Debug("gemini classify request",
		zap.Int("tenders", len(payload)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini classify response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, c.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(tendersJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Tenders:\n{{TENDERS_JSON}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{TENDERS_JSON}}", tendersJSON)
}

// parseResponse turns the model output into hints. Every field of a row is
// independently optional: absent or uncoercible values stay nil instead of
// defaulting to false, so "not answered" never masquerades as "no".
func parseResponse(raw string) (map[string]*matching.Hint, error) {
	cleaned := extractJSON(raw)

	var rows []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &rows); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	hints := make(map[string]*matching.Hint, len(rows))
	for _, row := range rows {
		id := coerceString(row["id"])
		if id == "" {
			continue
		}

		hint := &matching.Hint{
			Corporate:  coerceOptionalBool(row["corporate"]),
			Actionable: coerceOptionalBool(row["actionable"]),
		}
		if advice := coerceString(row["advice"]); advice != "" {
			hint.Advice = &advice
		}

		hints[id] = hint
	}

	return hints, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceOptionalBool(v any) *bool {
	switch val := v.(type) {
	case bool:
		return &val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		switch lower {
		case "true", "yes":
			t := true
			return &t
		case "false", "no":
			f := false
			return &f
		}
		return nil
	default:
		return nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}
