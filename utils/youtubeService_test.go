package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreVideoCandidate(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		title       string
		description string
		expected    int
	}{
		{
			name:     "title tokens score two each",
			query:    "rust basics",
			title:    "Rust Basics",
			expected: 4,
		},
		{
			name:        "description tokens score one each",
			query:       "rust basics",
			title:       "",
			description: "basics of rust",
			expected:    2,
		},
		{
			name:        "title and description are cumulative",
			query:       "rust basics",
			title:       "Rust",
			description: "basics of rust",
			expected:    4,
		},
		{
			name:     "tutorial keyword bonus",
			query:    "javascript array map",
			title:    "JavaScript Array Map Function Tutorial",
			expected: 9,
		},
		{
			name:     "bonus applies once for multiple keywords",
			query:    "x",
			title:    "Learn This Guide Tutorial",
			expected: 3,
		},
		{
			name:     "matching is case insensitive",
			query:    "DOCKER compose",
			title:    "docker COMPOSE guide",
			expected: 7,
		},
		{
			name:     "no match scores zero",
			query:    "kubernetes",
			title:    "Cooking pasta",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreVideoCandidate(tt.query, tt.title, tt.description))
		})
	}
}

func TestPickBestVideo(t *testing.T) {
	query := "javascript array map"
	candidates := []VideoCandidate{
		{ID: "low", Title: "Cooking pasta", Description: ""},
		{ID: "best", Title: "JavaScript Array Map Function Tutorial", Description: "Learn the map method"},
		{ID: "mid", Title: "JavaScript arrays", Description: ""},
	}

	best := PickBestVideo(query, candidates)
	require.NotNil(t, best)
	assert.Equal(t, "best", best.ID)
}

func TestPickBestVideoTieKeepsFirst(t *testing.T) {
	candidates := []VideoCandidate{
		{ID: "first", Title: "Go Tutorial"},
		{ID: "second", Title: "Go Tutorial"},
	}

	best := PickBestVideo("go", candidates)
	require.NotNil(t, best)
	assert.Equal(t, "first", best.ID)
}

func TestPickBestVideoEmpty(t *testing.T) {
	assert.Nil(t, PickBestVideo("anything", nil))
	assert.Nil(t, PickBestVideo("anything", []VideoCandidate{}))
}
