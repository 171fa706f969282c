package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOutlineJSON = `{
	"title": "Learning Go",
	"description": "A practical course on the Go programming language.",
	"topics": [
		{"title": "Syntax", "description": "Basic syntax.", "searchQuery": "go syntax tutorial"},
		{"title": "Concurrency", "description": "Goroutines and channels.", "searchQuery": "go concurrency tutorial"}
	]
}`

func TestParseCourseOutline(t *testing.T) {
	outline, err := ParseCourseOutline(validOutlineJSON)
	require.NoError(t, err)

	assert.Equal(t, "Learning Go", outline.Title)
	require.Len(t, outline.Topics, 2)
	assert.Equal(t, "go concurrency tutorial", outline.Topics[1].SearchQuery)
}

func TestParseCourseOutlineStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validOutlineJSON + "\n```"

	outline, err := ParseCourseOutline(fenced)
	require.NoError(t, err)

	plain, err := ParseCourseOutline(validOutlineJSON)
	require.NoError(t, err)
	assert.Equal(t, plain, outline)
}

func TestParseCourseOutlineMalformed(t *testing.T) {
	_, err := ParseCourseOutline(`{"title": "broken`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseCourseOutlineSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing title", `{"description": "d", "topics": [{"title": "t", "description": "d", "searchQuery": "q"}]}`},
		{"blank title", `{"title": "  ", "description": "d", "topics": [{"title": "t", "description": "d", "searchQuery": "q"}]}`},
		{"missing description", `{"title": "t", "topics": [{"title": "t", "description": "d", "searchQuery": "q"}]}`},
		{"missing topics", `{"title": "t", "description": "d"}`},
		{"empty topics", `{"title": "t", "description": "d", "topics": []}`},
		{"topics wrong type", `{"title": "t", "description": "d", "topics": "not an array"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCourseOutline(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaViolation)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, StripCodeFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripCodeFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripCodeFences(`{"a": 1}`))
}
