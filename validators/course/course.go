package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

func hasInvalidChars(s string) bool {
	matched, _ := regexp.MatchString(`[<>{}]`, s)
	return matched
}

// CreateCourse validates the admin course creation payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Duration     int64  `json:"duration"`
			Price        uint   `json:"price"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else {
			if len(reqData.Title) < 3 {
				errors["title"] = "Title must be at least 3 characters long!"
			}
			if len(reqData.Title) > 100 {
				errors["title"] = "Title must not exceed 100 characters!"
			}
			if hasInvalidChars(reqData.Title) {
				errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
			}
		}

		if reqData.Description != "" && hasInvalidChars(reqData.Description) {
			errors["description"] = "Description contains invalid characters (e.g., <, >, {, })!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseID validates the :id URL parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idParam := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idParam)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}
