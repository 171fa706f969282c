package models

import "gorm.io/gorm"

// Enrichment task kinds
const (
	EnrichmentKindThumbnail = "THUMBNAIL"
	EnrichmentKindVideo     = "VIDEO"
)

// Enrichment task statuses
const (
	EnrichmentPending   = "PENDING"
	EnrichmentRunning   = "RUNNING"
	EnrichmentSucceeded = "SUCCEEDED"
	EnrichmentFailed    = "FAILED"
)

// EnrichmentTask tracks one background enrichment attempt for a course so
// clients and operators can see what happened after the request returned.
type EnrichmentTask struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Kind     string `json:"kind"`
	Status   string `json:"status" gorm:"default:'PENDING'"`
	Error    string `json:"error"`
}
