// README: Maps a driver's free-text problem description onto the catalog's symptom vocabulary.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SymptomExtractor asks an LLM which known symptoms a description mentions.
type SymptomExtractor struct {
	llm LLMProvider
}

func NewSymptomExtractor(llm LLMProvider) *SymptomExtractor {
	return &SymptomExtractor{llm: llm}
}

// ExtractSymptoms returns the subset of known that the model picked, in the
// catalog's spelling and without duplicates. Anything outside known is dropped.
func (e *SymptomExtractor) ExtractSymptoms(ctx context.Context, description string, known []string) ([]string, error) {
	if len(known) == 0 {
		return nil, nil
	}
	reply, err := e.llm.Generate(ctx, buildSymptomPrompt(description, known))
	if err != nil {
		return nil, err
	}
	picked, err := parseSymptoms(reply)
	if err != nil {
		return nil, err
	}
	return canonicalize(picked, known), nil
}

func buildSymptomPrompt(description string, known []string) string {
	vocab, _ := json.Marshal(known)
	return fmt.Sprintf(`Role: You triage car problems for a repair-shop marketplace.

Known symptoms (use these exact strings, nothing else):
%s

RULES:
1. Read the driver's description and choose every known symptom it clearly describes.
2. Never invent a symptom that is not in the list.
3. If nothing matches, answer with an empty array.
4. Output only a JSON array of strings, for example ["squealing noise","vibration"].

Driver description: %s`, vocab, strings.TrimSpace(description))
}

// parseSymptoms accepts a bare JSON array or an object with a "symptoms" array.
func parseSymptoms(reply string) ([]string, error) {
	clean := cleanJSONString(reply)
	var list []string
	if err := json.Unmarshal([]byte(clean), &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Symptoms []string `json:"symptoms"`
	}
	if err := json.Unmarshal([]byte(clean), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, clean)
	}
	return wrapped.Symptoms, nil
}

func canonicalize(picked, known []string) []string {
	byKey := make(map[string]string, len(known))
	for _, k := range known {
		byKey[strings.ToLower(strings.TrimSpace(k))] = k
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range picked {
		k, ok := byKey[strings.ToLower(strings.TrimSpace(p))]
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
