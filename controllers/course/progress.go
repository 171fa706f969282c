package controllers

import (
	"courseforge/database"
	"courseforge/middleware"
	"courseforge/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleTopicCompletion flips one topic's completion flag and recomputes the
// course progress. The write asserts the course revision so two concurrent
// toggles cannot silently lose an update.
func ToggleTopicCompletion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	topicIndex := c.Locals("topicIndex").(int)

	course, err := findCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this course!", nil)
	}

	if topicIndex >= len(course.Topics) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Topic index out of range!", nil)
	}

	topic := &course.Topics[topicIndex]
	topic.Completed = !topic.Completed
	course.RecomputeProgress()

	tx := database.Database.Db.Begin()
	res := tx.Model(&models.Course{}).
		Where("id = ? AND revision = ?", course.ID, course.Revision).
		Updates(map[string]interface{}{
			"progress": course.Progress,
			"revision": course.Revision + 1,
		})
	if res.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course was modified concurrently. Please retry.", nil)
	}
	if err := tx.Model(&models.Topic{}).Where("id = ?", topic.ID).Update("completed", topic.Completed).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}
	tx.Commit()

	course.Revision++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic updated successfully!", course)
}

// AssignTopicVideo runs the video matcher on the topic's search query and
// stores the result. Even a null match is saved to mark the attempt.
func AssignTopicVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	topicIndex := c.Locals("topicIndex").(int)

	course, err := findCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this course!", nil)
	}

	if topicIndex >= len(course.Topics) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Topic index out of range!", nil)
	}

	topic := &course.Topics[topicIndex]

	var videoID *string
	if videos != nil {
		videoID = videos.FindBestVideo(c.Context(), topic.SearchQuery)
	}
	topic.VideoID = videoID

	tx := database.Database.Db.Begin()
	res := tx.Model(&models.Course{}).
		Where("id = ? AND revision = ?", course.ID, course.Revision).
		Update("revision", course.Revision+1)
	if res.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course was modified concurrently. Please retry.", nil)
	}
	if err := tx.Model(&models.Topic{}).Where("id = ?", topic.ID).Update("video_id", topic.VideoID).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}
	tx.Commit()

	course.Revision++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic video updated successfully!", course)
}
