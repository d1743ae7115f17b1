package purchaseValidator

import (
	"strings"

	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	"github.com/successfulca300-tech/ca-successfull-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// Checkout validates the checkout request payload
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ResourceType    string   `json:"resource_type"`
			ResourceID      string   `json:"resource_id"`
			SeriesInstances []string `json:"series_instances"`
			Subjects        []string `json:"subjects"`
			CouponCode      string   `json:"coupon_code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.ResourceType = strings.ToUpper(strings.TrimSpace(reqData.ResourceType))
		reqData.ResourceID = strings.TrimSpace(reqData.ResourceID)
		reqData.CouponCode = strings.ToUpper(strings.TrimSpace(reqData.CouponCode))

		switch reqData.ResourceType {
		case models.ResourceCourse, models.ResourceBook, models.ResourceTestSeries:
		default:
			errors["resource_type"] = "Resource type must be COURSE, BOOK or TEST_SERIES!"
		}

		if reqData.ResourceID == "" {
			errors["resource_id"] = "Resource ID is required!"
		}

		trim := func(list []string) []string {
			out := make([]string, 0, len(list))
			for _, v := range list {
				if v = strings.TrimSpace(v); v != "" {
					out = append(out, v)
				}
			}
			return out
		}
		reqData.SeriesInstances = trim(reqData.SeriesInstances)
		reqData.Subjects = trim(reqData.Subjects)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}

// Webhook validates the payment confirmation payload
func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OrderID   string   `json:"order_id"`
			PaymentID string   `json:"payment_id"`
			Signature string   `json:"signature"`
			Subjects  []string `json:"subjects"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.OrderID) == "" {
			errors["order_id"] = "Order ID is required!"
		}
		if strings.TrimSpace(reqData.PaymentID) == "" {
			errors["payment_id"] = "Payment ID is required!"
		}
		if strings.TrimSpace(reqData.Signature) == "" {
			errors["signature"] = "Signature is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWebhook", reqData)
		return c.Next()
	}
}
