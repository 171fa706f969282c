package utils

import (
	"context"
	"courseforge/database"
	"courseforge/models"
	"errors"
	"log"
	"sync"
	"time"
)

const enrichmentTaskTimeout = 2 * time.Minute

// EnrichmentJob is one unit of background work attached to a course.
type EnrichmentJob struct {
	CourseID uint
	Kind     string
	Run      func(ctx context.Context) error
}

type queuedJob struct {
	taskID uint
	job    EnrichmentJob
}

// EnrichmentQueue runs fire-and-forget enrichment work on a fixed pool of
// workers. Every job is backed by an EnrichmentTask row so its lifecycle
// (pending, running, succeeded, failed) stays observable after the request
// that scheduled it has returned.
type EnrichmentQueue struct {
	jobs chan queuedJob
	wg   sync.WaitGroup
}

// NewEnrichmentQueue starts the worker pool.
func NewEnrichmentQueue(workers, buffer int) *EnrichmentQueue {
	if workers < 1 {
		workers = 1
	}
	q := &EnrichmentQueue{jobs: make(chan queuedJob, buffer)}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue records the task and hands it to the workers. The caller never
// waits on the work itself.
func (q *EnrichmentQueue) Enqueue(job EnrichmentJob) (uint, error) {
	task := models.EnrichmentTask{
		CourseID: job.CourseID,
		Kind:     job.Kind,
		Status:   models.EnrichmentPending,
	}
	if err := database.Database.Db.Create(&task).Error; err != nil {
		return 0, err
	}

	select {
	case q.jobs <- queuedJob{taskID: task.ID, job: job}:
		return task.ID, nil
	default:
		q.setStatus(task.ID, models.EnrichmentFailed, "enrichment queue is full")
		return task.ID, errors.New("enrichment queue is full")
	}
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (q *EnrichmentQueue) Close() {
	close(q.jobs)
	q.wg.Wait()
}

func (q *EnrichmentQueue) worker() {
	defer q.wg.Done()
	for item := range q.jobs {
		q.setStatus(item.taskID, models.EnrichmentRunning, "")

		ctx, cancel := context.WithTimeout(context.Background(), enrichmentTaskTimeout)
		err := item.job.Run(ctx)
		cancel()

		if err != nil {
			log.Printf("Enrichment %s for course %d failed: %v", item.job.Kind, item.job.CourseID, err)
			q.setStatus(item.taskID, models.EnrichmentFailed, err.Error())
			continue
		}
		q.setStatus(item.taskID, models.EnrichmentSucceeded, "")
	}
}

func (q *EnrichmentQueue) setStatus(taskID uint, status, errMsg string) {
	update := map[string]interface{}{"status": status, "error": errMsg}
	if err := database.Database.Db.Model(&models.EnrichmentTask{}).
		Where("id = ?", taskID).
		Updates(update).Error; err != nil {
		log.Printf("Failed to update enrichment task %d: %v", taskID, err)
	}
}
