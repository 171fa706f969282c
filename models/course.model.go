package models

import (
	"math"

	"gorm.io/gorm"
)

// Course difficulty levels accepted by the generate endpoint
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Course is an AI-generated learning path owned by a single user.
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Difficulty   string  `json:"difficulty"`
	OwnerID      string  `json:"owner_id" gorm:"index;not null"`
	Progress     int     `json:"progress" gorm:"default:0"`
	ThumbnailURL string  `json:"thumbnail_url" gorm:"default:''"`
	Revision     int     `json:"revision" gorm:"default:1"`
	IsDeleted    bool    `gorm:"default:false"`
	Topics       []Topic `json:"topics" gorm:"foreignKey:CourseID"`
}

// Topic is one ordered unit within a course. Addressing from the API is
// positional (Position), the UID only gives each row a stable identity.
type Topic struct {
	gorm.Model
	CourseID    uint    `json:"course_id" gorm:"index;not null"`
	UID         string  `json:"uid" gorm:"index"`
	Position    int     `json:"position"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SearchQuery string  `json:"search_query"`
	VideoID     *string `json:"video_id"`
	Completed   bool    `json:"completed" gorm:"default:false"`
	IsDeleted   bool    `gorm:"default:false"`
}

// ValidDifficulty reports whether d is one of the accepted difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// RecomputeProgress updates Progress from the completion flags of the loaded
// topics. Progress is round(100*completed/total); with no topics the prior
// value is kept.
func (c *Course) RecomputeProgress() {
	total := len(c.Topics)
	if total == 0 {
		return
	}
	completed := 0
	for _, t := range c.Topics {
		if t.Completed {
			completed++
		}
	}
	c.Progress = int(math.Round(100 * float64(completed) / float64(total)))
}
