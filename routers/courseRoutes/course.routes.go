package courseRoutes

import (
	controllers "courseforge/controllers/course"
	"courseforge/middleware"
	validators "courseforge/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourse)

	// AI generation and structural edits
	courseGroup.Post("/generate", middleware.JWTMiddleware, validators.GenerateCourse(), controllers.GenerateCourse)
	courseGroup.Post("/:id/edit", middleware.JWTMiddleware, validators.EditCourse(), controllers.EditCourseStructure)

	// Thumbnail upload and deletion
	courseGroup.Patch("/:id/thumbnail", middleware.JWTMiddleware, validators.CourseID(), controllers.UpdateThumbnail)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.DeleteCourse)

	// Topic completion and video assignment
	courseGroup.Post("/:id/topic/:index/toggle", middleware.JWTMiddleware, validators.TopicIndex(), controllers.ToggleTopicCompletion)
	courseGroup.Post("/:id/topic/:index/video", middleware.JWTMiddleware, validators.TopicIndex(), controllers.AssignTopicVideo)

	// Background enrichment visibility
	courseGroup.Get("/:id/enrichment", middleware.JWTMiddleware, validators.CourseID(), controllers.GetEnrichmentTasks)
}
