package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/successfulca300-tech/ca-successfull-sub000/database"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	"github.com/successfulca300-tech/ca-successfull-sub000/models"
	"github.com/successfulca300-tech/ca-successfull-sub000/testseries"
	"github.com/successfulca300-tech/ca-successfull-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// Checkout creates a pending purchase and a payment gateway order.
// The purchase stays PENDING until the gateway confirms payment.
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*struct {
		ResourceType    string   `json:"resource_type"`
		ResourceID      string   `json:"resource_id"`
		SeriesInstances []string `json:"series_instances"`
		Subjects        []string `json:"subjects"`
		CouponCode      string   `json:"coupon_code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var (
		resourceRef string
		amount      uint
		subjects    []string
	)

	switch reqData.ResourceType {
	case models.ResourceCourse:
		id, err := strconv.Atoi(reqData.ResourceID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		var course models.Course
		if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", id, true, false).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		resourceRef = strconv.Itoa(int(course.ID))
		amount = applyCoupon(course.Price, reqData.CouponCode)

	case models.ResourceBook:
		id, err := strconv.Atoi(reqData.ResourceID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid book ID!", nil)
		}
		var book models.Book
		if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", id, true, false).First(&book).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
		}
		resourceRef = strconv.Itoa(int(book.ID))
		amount = applyCoupon(book.Price, reqData.CouponCode)

	case models.ResourceTestSeries:
		reg := testseries.NewRegistry(db, testseries.DefaultCatalog())

		key, err := reg.Resolve(reqData.ResourceID)
		if err != nil {
			if errors.Is(err, testseries.ErrUnknownSeries) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve test series!", nil)
		}

		def, err := reg.EffectiveTier(key)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load tier configuration!", nil)
		}

		if errs := testseries.ValidateSelection(def, reqData.SeriesInstances, reqData.Subjects); len(errs) > 0 {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Invalid selection!", fiber.Map{
				"isValid": false,
				"errors":  errs,
			})
		}

		quote := testseries.Price(def, reqData.SeriesInstances, reqData.Subjects, lookupCoupon(reqData.CouponCode))

		// Purchases are written under the canonical reference; older
		// rows under the shorthand still count via the alternates query
		resourceRef = key.Canonical()
		amount = quote.FinalPrice
		subjects = purchaseTokens(def, reqData.SeriesInstances, reqData.Subjects)
	}

	receipt := fmt.Sprintf("u%d_%d", userID, time.Now().Unix())
	orderID, err := utils.CreatePaymentOrder(amount, receipt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create payment order!", nil)
	}

	purchase := models.Purchase{
		UserID:         userID,
		ResourceType:   reqData.ResourceType,
		ResourceRef:    resourceRef,
		PaymentStatus:  models.PaymentPending,
		GatewayOrderID: orderID,
		Amount:         amount,
	}
	if len(subjects) > 0 {
		raw, err := json.Marshal(subjects)
		if err == nil {
			purchase.PurchasedSubjects = raw
		}
	}

	if err := db.Create(&purchase).Error; err != nil {
		log.Printf("Error saving purchase: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Checkout created successfully!", fiber.Map{
		"purchase": purchase,
		"order_id": orderID,
		"amount":   amount,
	})
}

// GetMyPurchases lists the caller's purchases
func GetMyPurchases(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var purchases []models.Purchase
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched successfully!", purchases)
}

// purchaseTokens builds the stored subject tokens. Multi-instance
// purchases record "<instance>-<subject>" pairs so a token pins a
// subject to one series; other tiers record the plain subject.
func purchaseTokens(def testseries.TierDef, instances, subjects []string) []string {
	if !def.MultiInstance {
		return subjects
	}
	tokens := make([]string, 0, len(instances)*len(subjects))
	for _, inst := range instances {
		for _, sub := range subjects {
			tokens = append(tokens, inst+"-"+sub)
		}
	}
	return tokens
}

func lookupCoupon(code string) *testseries.CouponSpec {
	if code == "" {
		return nil
	}
	var coupon models.Coupon
	err := database.Database.Db.
		Where("code = ? AND is_active = ? AND is_deleted = ?", code, true, false).
		First(&coupon).Error
	if err != nil {
		return nil
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil
	}
	return &testseries.CouponSpec{Type: coupon.DiscountType, Value: coupon.Value}
}

// applyCoupon discounts a flat resource price (courses, books)
func applyCoupon(price uint, code string) uint {
	spec := lookupCoupon(code)
	if spec == nil {
		return price
	}
	switch spec.Type {
	case models.CouponFlat:
		if spec.Value >= price {
			return 0
		}
		return price - spec.Value
	case models.CouponPercent:
		discount := price * spec.Value / 100
		if discount > price {
			return 0
		}
		return price - discount
	}
	return price
}
