package courseValidator

import (
	"courseforge/middleware"
	"courseforge/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func GenerateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Topic      string `json:"topic"`
			Difficulty string `json:"difficulty"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Topic
		if strings.TrimSpace(reqData.Topic) == "" {
			errors["topic"] = "Topic is required!"
		}

		// Validate Difficulty
		if strings.TrimSpace(reqData.Difficulty) == "" {
			errors["difficulty"] = "Difficulty is required!"
		} else if !models.ValidDifficulty(reqData.Difficulty) {
			errors["difficulty"] = "Difficulty must be beginner, intermediate or advanced!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGenerate", reqData)
		return c.Next()
	}
}

func EditCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Instruction string `json:"instruction"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Instruction) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"instruction": "Instruction is required!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedEdit", reqData)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func TopicIndex() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		indexStr := strings.TrimSpace(c.Params("index"))
		index, err := strconv.Atoi(indexStr)
		if err != nil || index < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid topic index!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("topicIndex", index)
		return c.Next()
	}
}

func parseCourseID(c *fiber.Ctx) (int, bool) {
	courseIDStr := strings.TrimSpace(c.Params("id"))
	if courseIDStr == "" {
		return 0, false
	}

	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil || courseID <= 0 {
		return 0, false
	}
	return courseID, true
}
