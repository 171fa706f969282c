package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseforge/models"
)

func TestEnrichmentQueueSuccessLifecycle(t *testing.T) {
	db := setupTestDb(t)

	q := NewEnrichmentQueue(1, 4)

	ran := false
	taskID, err := q.Enqueue(EnrichmentJob{
		CourseID: 7,
		Kind:     models.EnrichmentKindThumbnail,
		Run: func(ctx context.Context) error {
			ran = true
			return nil
		},
	})
	require.NoError(t, err)
	q.Close()

	assert.True(t, ran)

	var task models.EnrichmentTask
	require.NoError(t, db.First(&task, taskID).Error)
	assert.Equal(t, models.EnrichmentSucceeded, task.Status)
	assert.Equal(t, uint(7), task.CourseID)
	assert.Equal(t, models.EnrichmentKindThumbnail, task.Kind)
	assert.Equal(t, "", task.Error)
}

func TestEnrichmentQueueFailureRecordsError(t *testing.T) {
	db := setupTestDb(t)

	q := NewEnrichmentQueue(1, 4)

	taskID, err := q.Enqueue(EnrichmentJob{
		CourseID: 3,
		Kind:     models.EnrichmentKindThumbnail,
		Run: func(ctx context.Context) error {
			return errors.New("no thumbnail candidate found")
		},
	})
	require.NoError(t, err)
	q.Close()

	var task models.EnrichmentTask
	require.NoError(t, db.First(&task, taskID).Error)
	assert.Equal(t, models.EnrichmentFailed, task.Status)
	assert.Equal(t, "no thumbnail candidate found", task.Error)
}

func TestEnrichmentQueueJobContextHasDeadline(t *testing.T) {
	setupTestDb(t)

	q := NewEnrichmentQueue(1, 4)

	var hasDeadline bool
	_, err := q.Enqueue(EnrichmentJob{
		CourseID: 1,
		Kind:     models.EnrichmentKindVideo,
		Run: func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		},
	})
	require.NoError(t, err)
	q.Close()

	assert.True(t, hasDeadline)
}

func TestEnqueueFullQueueFailsTask(t *testing.T) {
	db := setupTestDb(t)

	// One worker, buffer of one: park the worker on a blocking job, fill the
	// buffer, then the next enqueue has nowhere to go.
	q := NewEnrichmentQueue(1, 1)

	gate := make(chan struct{})
	started := make(chan struct{})
	_, err := q.Enqueue(EnrichmentJob{
		CourseID: 1,
		Kind:     models.EnrichmentKindThumbnail,
		Run: func(ctx context.Context) error {
			close(started)
			<-gate
			return nil
		},
	})
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never picked up the first job")
	}

	_, err = q.Enqueue(EnrichmentJob{
		CourseID: 2,
		Kind:     models.EnrichmentKindThumbnail,
		Run:      func(ctx context.Context) error { return nil },
	})
	require.NoError(t, err)

	taskID, err := q.Enqueue(EnrichmentJob{
		CourseID: 3,
		Kind:     models.EnrichmentKindThumbnail,
		Run:      func(ctx context.Context) error { return nil },
	})
	require.Error(t, err)

	var task models.EnrichmentTask
	require.NoError(t, db.First(&task, taskID).Error)
	assert.Equal(t, models.EnrichmentFailed, task.Status)
	assert.Equal(t, "enrichment queue is full", task.Error)

	close(gate)
	q.Close()
}
