package controllers

import (
	"context"
	"courseforge/database"
	"courseforge/middleware"
	"courseforge/models"
	"courseforge/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GenerateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedGenerate").(*struct {
		Topic      string `json:"topic"`
		Difficulty string `json:"difficulty"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if generator == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "AI provider is not configured!", nil)
	}

	raw, err := generator.GenerateCourseOutline(c.Context(), reqData.Topic, reqData.Difficulty)
	if err != nil {
		log.Printf("Error generating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error generating course content!", nil)
	}

	outline, err := utils.ParseCourseOutline(raw)
	if err != nil {
		log.Printf("Error parsing AI response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
			"Failed to generate valid course data. Please try again.", fiber.Map{"raw": raw})
	}

	course := models.Course{
		Title:       outline.Title,
		Description: outline.Description,
		Difficulty:  reqData.Difficulty,
		OwnerID:     userId,
		Progress:    0,
		Revision:    1,
		Topics:      buildTopics(outline.Topics),
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course!", nil)
	}

	scheduleThumbnail(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course generated successfully!", course)
}

func EditCourseStructure(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedEdit").(*struct {
		Instruction string `json:"instruction"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := findCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to edit this course!", nil)
	}

	if generator == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "AI provider is not configured!", nil)
	}

	raw, err := generator.EditCourseOutline(c.Context(), course, reqData.Instruction)
	if err != nil {
		log.Printf("Error editing course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error generating course content!", nil)
	}

	outline, err := utils.ParseCourseOutline(raw)
	if err != nil {
		// The stored course is left untouched on invalid output
		log.Printf("Error parsing AI edit response for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
			"Failed to generate valid course data. Please try again.", fiber.Map{"raw": raw})
	}

	// The topics array is replaced wholesale from the new outline; prior
	// completion flags and video assignments do not carry over.
	newTopics := buildTopics(outline.Topics)

	tx := database.Database.Db.Begin()
	if err := tx.Model(&models.Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"title":       outline.Title,
		"description": outline.Description,
		"progress":    0,
		"revision":    gorm.Expr("revision + 1"),
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	if err := tx.Model(&models.Topic{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	for i := range newTopics {
		newTopics[i].CourseID = course.ID
		if err := tx.Create(&newTopics[i]).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
	}
	tx.Commit()

	updated, err := findCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", updated)
}

func buildTopics(outlines []utils.TopicOutline) []models.Topic {
	topics := make([]models.Topic, len(outlines))
	for i, t := range outlines {
		topics[i] = models.Topic{
			UID:         uuid.NewString(),
			Position:    i,
			Title:       t.Title,
			Description: t.Description,
			SearchQuery: t.SearchQuery,
			Completed:   false,
		}
	}
	return topics
}

func scheduleThumbnail(course *models.Course) {
	if queue == nil || thumbnails == nil {
		return
	}

	courseID := course.ID
	title := course.Title
	if _, err := queue.Enqueue(utils.EnrichmentJob{
		CourseID: courseID,
		Kind:     models.EnrichmentKindThumbnail,
		Run: func(ctx context.Context) error {
			return thumbnails.ResolveAndStore(ctx, courseID, title)
		},
	}); err != nil {
		log.Printf("Failed to schedule thumbnail for course %d: %v", courseID, err)
	}
}
