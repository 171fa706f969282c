package utils

import (
	"courseforge/models"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// CourseOutlineSchema is the fixed output contract sent to the model. It is
// compiled once; both generation modes share it, only the instruction text
// differs.
var CourseOutlineSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title": {
			Type:        genai.TypeString,
			Description: "A concise, descriptive title for the course",
		},
		"description": {
			Type:        genai.TypeString,
			Description: "A detailed 2-3 sentence description of the course",
		},
		"topics": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: "A concise, descriptive title for the topic",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "A detailed 2-3 sentence description of the topic",
					},
					"searchQuery": {
						Type:        genai.TypeString,
						Description: "A YouTube search phrase biased toward tutorial-style videos for this topic",
					},
				},
				Required: []string{"title", "description", "searchQuery"},
			},
		},
	},
	Required: []string{"title", "description", "topics"},
}

const outlineFormatRules = `Ensure the response:
1. Contains ONLY a single JSON object
2. Uses double quotes for all keys and string values
3. Has no trailing commas
4. Has properly escaped special characters
5. Orders topics from simplest to most advanced
6. Scopes each topic to what one can learn in a 15-30 minute video
7. Gives each topic a searchQuery written to find tutorial-style YouTube videos
8. Follows the exact schema above`

// BuildGeneratePrompt produces the instruction text for a fresh course
// generation. Pure function of its inputs.
func BuildGeneratePrompt(topic, difficulty string) string {
	return fmt.Sprintf(`Generate a detailed course outline for %q at %s level.

The response MUST be a valid JSON object with the following schema:
{
  "title": "string - A concise, descriptive title for the course",
  "description": "string - A detailed 2-3 sentence description of the course",
  "topics": [
    {
      "title": "string - A concise, descriptive title for the topic",
      "description": "string - A detailed 2-3 sentence description of the topic",
      "searchQuery": "string - A YouTube search phrase for a tutorial video covering the topic"
    }
  ]
}

%s`, topic, difficulty, outlineFormatRules)
}

// BuildEditPrompt produces the instruction text for a structural edit. The
// full current course is embedded as context and the model is told to keep
// everything the instruction does not touch.
func BuildEditPrompt(course *models.Course, instruction string) string {
	snapshot := CourseOutline{
		Title:       course.Title,
		Description: course.Description,
		Topics:      make([]TopicOutline, len(course.Topics)),
	}
	for i, t := range course.Topics {
		snapshot.Topics[i] = TopicOutline{
			Title:       t.Title,
			Description: t.Description,
			SearchQuery: t.SearchQuery,
		}
	}
	current, _ := json.MarshalIndent(snapshot, "", "  ")

	return fmt.Sprintf(`You are revising an existing course outline. This is the current course:

%s

Apply ONLY the following change, preserving every title, description and
searchQuery the change does not touch:

%s

Return the complete revised course as a valid JSON object with the same schema
as the current course (title, description, topics with title/description/searchQuery).

%s`, string(current), instruction, outlineFormatRules)
}
