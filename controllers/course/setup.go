package controllers

import (
	"context"
	"courseforge/models"
	"courseforge/utils"
	"io"
)

// OutlineGenerator produces raw model output for fresh and edit prompts.
type OutlineGenerator interface {
	GenerateCourseOutline(ctx context.Context, topic, difficulty string) (string, error)
	EditCourseOutline(ctx context.Context, course *models.Course, instruction string) (string, error)
}

// VideoFinder picks the best-matching video id for a search phrase.
type VideoFinder interface {
	FindBestVideo(ctx context.Context, query string) *string
}

// ThumbnailResolver locates and stores a course thumbnail out-of-band.
type ThumbnailResolver interface {
	ResolveAndStore(ctx context.Context, courseID uint, title string) error
}

// Uploader stores raw bytes in blob storage and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}

var (
	generator  OutlineGenerator
	videos     VideoFinder
	thumbnails ThumbnailResolver
	blob       Uploader
	queue      *utils.EnrichmentQueue
)

// Setup wires the provider services into the course controllers. Any service
// may be nil when its provider is not configured; the affected operations
// then degrade (generation errors out, enrichment is skipped).
func Setup(g OutlineGenerator, v VideoFinder, t ThumbnailResolver, b Uploader, q *utils.EnrichmentQueue) {
	generator = g
	videos = v
	thumbnails = t
	blob = b
	queue = q
}
