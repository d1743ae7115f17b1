package testseriesValidator

import (
	"strings"

	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"

	"github.com/gofiber/fiber/v2"
)

// SeriesID validates the :id URL parameter (managed key or tier code;
// the registry decides which)
func SeriesID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		seriesID := strings.TrimSpace(c.Params("id"))
		if seriesID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Series ID is required in the URL!", nil)
		}

		c.Locals("seriesID", seriesID)
		return c.Next()
	}
}

// Quote validates the pricing request payload
func Quote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Series          string   `json:"series"`
			SeriesInstances []string `json:"series_instances"`
			Subjects        []string `json:"subjects"`
			CouponCode      string   `json:"coupon_code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Series = strings.TrimSpace(reqData.Series)
		if reqData.Series == "" {
			errors["series"] = "Series identifier is required!"
		}

		// Normalize selections; rule-level checks happen in the engine
		reqData.SeriesInstances = trimAll(reqData.SeriesInstances)
		reqData.Subjects = trimAll(reqData.Subjects)
		reqData.CouponCode = strings.ToUpper(strings.TrimSpace(reqData.CouponCode))

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuote", reqData)
		return c.Next()
	}
}

// AttachMedia validates the media upload form fields
func AttachMedia() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := strings.ToLower(strings.TrimSpace(c.FormValue("kind")))

		if kind != tsModels.MediaThumbnail && kind != tsModels.MediaVideo {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Media kind must be 'thumbnail' or 'video'!", nil)
		}

		if _, err := c.FormFile("file"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Media file is required!", nil)
		}

		c.Locals("mediaKind", kind)
		return c.Next()
	}
}

// UploadPaper validates the paper upload form fields
func UploadPaper() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			GroupName      string
			Subject        string
			SeriesInstance string
			PaperType      string
			Title          string
			Publish        bool
		})

		reqData.GroupName = strings.TrimSpace(c.FormValue("group"))
		reqData.Subject = strings.TrimSpace(c.FormValue("subject"))
		reqData.SeriesInstance = strings.TrimSpace(c.FormValue("series_instance"))
		reqData.PaperType = strings.TrimSpace(c.FormValue("paper_type"))
		reqData.Title = strings.TrimSpace(c.FormValue("title"))
		reqData.Publish = c.FormValue("publish") == "true"

		errors := make(map[string]string)

		if reqData.Subject == "" {
			errors["subject"] = "Subject is required!"
		}
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PaperType == "" {
			reqData.PaperType = "QUESTION"
		}

		if _, err := c.FormFile("file"); err != nil {
			errors["file"] = "Paper file is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaper", reqData)
		return c.Next()
	}
}

// UpdateSeries validates the managed record update payload
func UpdateSeries() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string   `json:"title"`
			Description      string   `json:"description"`
			Subjects         []string `json:"subjects"`
			SubjectUnitPrice uint     `json:"subject_unit_price"`
			IsPublished      *bool    `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Subjects = trimAll(reqData.Subjects)

		c.Locals("validatedSeriesUpdate", reqData)
		return c.Next()
	}
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
