package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TopicOutline is one topic as produced by the model.
type TopicOutline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SearchQuery string `json:"searchQuery"`
}

// CourseOutline is the validated shape of a model response, before it is
// merged into a persisted course.
type CourseOutline struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Topics      []TopicOutline `json:"topics"`
}

// StripCodeFences removes markdown code fence markers the model sometimes
// wraps its JSON in.
func StripCodeFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ParseCourseOutline converts raw model output into a CourseOutline or fails
// explicitly. It strips code fences, parses a single JSON object and checks
// the required top-level keys. Content quality beyond structural shape is the
// model's responsibility.
func ParseCourseOutline(raw string) (*CourseOutline, error) {
	cleaned := StripCodeFences(raw)

	var outline CourseOutline
	if err := json.Unmarshal([]byte(cleaned), &outline); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if strings.TrimSpace(outline.Title) == "" {
		return nil, fmt.Errorf("%w: missing title", ErrSchemaViolation)
	}
	if strings.TrimSpace(outline.Description) == "" {
		return nil, fmt.Errorf("%w: missing description", ErrSchemaViolation)
	}
	if len(outline.Topics) == 0 {
		return nil, fmt.Errorf("%w: topics must be a non-empty array", ErrSchemaViolation)
	}

	return &outline, nil
}
