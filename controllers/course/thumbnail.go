package controllers

import (
	"courseforge/database"
	"courseforge/middleware"
	"courseforge/models"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// maxThumbnailSize limits manual thumbnail uploads to 5MB.
const maxThumbnailSize = 5 * 1024 * 1024

// UpdateThumbnail replaces a course thumbnail with an uploaded file.
func UpdateThumbnail(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this course!", nil)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	if file.Size > maxThumbnailSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File exceeds the 5MB limit!", nil)
	}

	if blob == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Blob storage is not configured!", nil)
	}

	src, err := file.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded file!", nil)
	}
	defer src.Close()

	key := fmt.Sprintf("thumbnails/%d-%d%s", course.ID, time.Now().Unix(), filepath.Ext(file.Filename))
	url, err := blob.Upload(c.Context(), key, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Error uploading thumbnail for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error updating thumbnail!", nil)
	}

	if err := database.Database.Db.Model(&models.Course{}).
		Where("id = ?", course.ID).
		Update("thumbnail_url", url).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error updating thumbnail!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail updated successfully!", fiber.Map{
		"thumbnail_url": url,
	})
}
