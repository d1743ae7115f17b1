package bookValidator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateBook validates the admin book creation payload
func CreateBook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Author      string `json:"author"`
			Description string `json:"description"`
			Price       uint   `json:"price"`
			CoverURL    string `json:"cover_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 150 {
			errors["title"] = "Title must not exceed 150 characters!"
		}
		if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Title); matched {
			errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBook", reqData)
		return c.Next()
	}
}

// BookID validates the :id URL parameter
func BookID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idParam := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idParam)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid book ID!", nil)
		}

		c.Locals("bookID", id)
		return c.Next()
	}
}
