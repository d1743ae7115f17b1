package controllers

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/successfulca300-tech/ca-successfull-sub000/database"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	"github.com/successfulca300-tech/ca-successfull-sub000/models"
	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"
	"github.com/successfulca300-tech/ca-successfull-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// PaymentWebhook handles the gateway's signature-verified payment
// confirmation. It transitions the pending purchase to PAID and stores
// the confirmed subject list. Paid purchases are never mutated again
// except for refunds.
func PaymentWebhook(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWebhook").(*struct {
		OrderID   string   `json:"order_id"`
		PaymentID string   `json:"payment_id"`
		Signature string   `json:"signature"`
		Subjects  []string `json:"subjects"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !utils.VerifyPaymentSignature(reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		log.Printf("Payment webhook signature mismatch for order %s", reqData.OrderID)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid payment signature!", nil)
	}

	db := database.Database.Db

	var purchase models.Purchase
	if err := db.
		Where("gateway_order_id = ? AND is_deleted = ?", reqData.OrderID, false).
		First(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Purchase not found for this order!", nil)
	}

	if purchase.PaymentStatus == models.PaymentPaid {
		// Gateways retry webhooks; confirmation is idempotent
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already confirmed.", purchase)
	}
	if purchase.PaymentStatus != models.PaymentPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Purchase is not awaiting payment!", nil)
	}

	now := time.Now()
	purchase.PaymentStatus = models.PaymentPaid
	purchase.GatewayPaymentID = reqData.PaymentID
	purchase.PaidAt = &now
	if len(reqData.Subjects) > 0 {
		if raw, err := json.Marshal(reqData.Subjects); err == nil {
			purchase.PurchasedSubjects = raw
		}
	}

	tx := db.Begin()
	if err := tx.Save(&purchase).Error; err != nil {
		tx.Rollback()
		log.Printf("Error confirming purchase %d: %v", purchase.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm payment!", nil)
	}
	tx.Commit()

	// Confirmation email, best effort
	var user models.User
	if err := db.Where("id = ?", purchase.UserID).First(&user).Error; err == nil {
		utils.SendPurchaseConfirmationEmail(user.Email, user.Name, resourceTitle(purchase), purchase.Amount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed successfully!", purchase)
}

// resourceTitle resolves a human-readable name for the purchased
// resource, falling back to the raw reference
func resourceTitle(p models.Purchase) string {
	db := database.Database.Db

	switch p.ResourceType {
	case models.ResourceCourse:
		if id, err := strconv.Atoi(p.ResourceRef); err == nil {
			var course models.Course
			if err := db.Where("id = ?", id).First(&course).Error; err == nil {
				return course.Title
			}
		}
	case models.ResourceBook:
		if id, err := strconv.Atoi(p.ResourceRef); err == nil {
			var book models.Book
			if err := db.Where("id = ?", id).First(&book).Error; err == nil {
				return book.Title
			}
		}
	case models.ResourceTestSeries:
		var series tsModels.TestSeries
		if err := db.Where("id = ? OR tier_code = ?", p.ResourceRef, strings.ToUpper(p.ResourceRef)).First(&series).Error; err == nil {
			return series.Title
		}
	}

	return p.ResourceRef
}
