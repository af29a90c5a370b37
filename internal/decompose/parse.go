package decompose

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/taskbreak/taskbreak/internal/models"
)

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// extractJSONPayload pulls the JSON object out of a model reply: the first
// fenced ```json block when present, otherwise the first brace-delimited span
// in the raw text.
func extractJSONPayload(content string) (string, bool) {
	if m := fencedJSONPattern.FindStringSubmatch(content); m != nil {
		return m[1], true
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		return content[start : end+1], true
	}
	return "", false
}

// parseDecomposition builds a DecompositionResponse from a model reply.
// Missing fields fall back to: the original goal text, an empty task list,
// zero total time, and the generic "other" category.
func parseDecomposition(content, originalGoal string) (*models.DecompositionResponse, error) {
	payload, ok := extractJSONPayload(content)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model reply", ErrDecompositionFormat)
	}

	var parsed struct {
		Goal               string                  `json:"goal"`
		Tasks              []models.DecomposedTask `json:"tasks"`
		EstimatedTotalTime int                     `json:"estimatedTotalTime"`
		Category           string                  `json:"category"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompositionFormat, err)
	}

	resp := &models.DecompositionResponse{
		Goal:               parsed.Goal,
		Tasks:              parsed.Tasks,
		EstimatedTotalTime: parsed.EstimatedTotalTime,
		Category:           parsed.Category,
	}
	if resp.Goal == "" {
		resp.Goal = originalGoal
	}
	if resp.Tasks == nil {
		resp.Tasks = []models.DecomposedTask{}
	}
	if resp.Category == "" {
		resp.Category = models.CategoryOther
	}
	return resp, nil
}
