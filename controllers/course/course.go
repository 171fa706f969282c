package controllers

import (
	"courseforge/database"
	"courseforge/middleware"
	"courseforge/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// findCourse loads a live course with its topics in display order.
func findCourse(courseID int) (*models.Course, error) {
	var course models.Course
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("position asc")
		}).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func GetAllCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.
		Where("owner_id = ? AND is_deleted = ?", userId, false).
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("position asc")
		}).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := findCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := findCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if the user owns the course
	if course.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this course!", nil)
	}

	// Topics are embedded in the course, so deleting the course cascades
	tx := database.Database.Db.Begin()
	if err := tx.Model(&models.Course{}).Where("id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Model(&models.Topic{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetEnrichmentTasks lists the background enrichment attempts for a course so
// clients can poll for thumbnail/video completion.
func GetEnrichmentTasks(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := findCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to view this course!", nil)
	}

	var tasks []models.EnrichmentTask
	if err := database.Database.Db.
		Where("course_id = ?", course.ID).
		Order("created_at desc").
		Find(&tasks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrichment tasks!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrichment tasks fetched successfully!", fiber.Map{
		"tasks": tasks,
	})
}
