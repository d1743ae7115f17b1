package controllers

import (
	"errors"
	"time"

	"github.com/successfulca300-tech/ca-successfull-sub000/database"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	"github.com/successfulca300-tech/ca-successfull-sub000/models"
	"github.com/successfulca300-tech/ca-successfull-sub000/testseries"

	"github.com/gofiber/fiber/v2"
)

func registry() *testseries.Registry {
	return testseries.NewRegistry(database.Database.Db, testseries.DefaultCatalog())
}

// couponSpec looks up a live coupon by code. Unknown or expired codes
// price as no coupon rather than failing the quote.
func couponSpec(code string) *testseries.CouponSpec {
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

// QuoteTestSeries resolves a series identifier and prices a selection
func QuoteTestSeries(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuote").(*struct {
		Series          string   `json:"series"`
		SeriesInstances []string `json:"series_instances"`
		Subjects        []string `json:"subjects"`
		CouponCode      string   `json:"coupon_code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reg := registry()

	key, err := reg.Resolve(reqData.Series)
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

	quote := testseries.Price(def, reqData.SeriesInstances, reqData.Subjects, couponSpec(reqData.CouponCode))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quote computed successfully!", fiber.Map{
		"series": key.Canonical(),
		"tier":   def.Code,
		"quote":  quote,
	})
}

// CheckEntitlement returns the caller's access decision for a series
func CheckEntitlement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	seriesID := c.Locals("seriesID").(string)

	resolver := testseries.NewResolver(database.Database.Db, registry())
	ent, err := resolver.Entitlement(userID, seriesID)
	if err != nil {
		if errors.Is(err, testseries.ErrUnknownSeries) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute entitlement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entitlement computed successfully!", ent)
}

// ListPapers returns the papers the caller's entitlement allows
func ListPapers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	seriesID := c.Locals("seriesID").(string)
	db := database.Database.Db
	reg := registry()

	key, err := reg.Resolve(seriesID)
	if err != nil {
		if errors.Is(err, testseries.ErrUnknownSeries) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve test series!", nil)
	}

	resolver := testseries.NewResolver(db, reg)
	ent, err := resolver.EntitlementForKey(userID, key)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute entitlement!", nil)
	}
	if !ent.HasAccess {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No access! Purchase this test series to view papers.", nil)
	}

	query := testseries.PaperQuery{
		Group:    c.Query("group"),
		Subject:  c.Query("subject"),
		Instance: c.Query("series_instance"),
	}

	papers, err := testseries.VisiblePapers(db, key, ent, query)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch papers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Papers fetched successfully!", fiber.Map{
		"papers":      papers,
		"entitlement": ent,
	})
}

// PublicSeriesSummary returns per-subject paper counts for catalog
// pages. No authentication and no paper rows, aggregates only.
func PublicSeriesSummary(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(string)

	key, err := registry().Resolve(seriesID)
	if err != nil {
		if errors.Is(err, testseries.ErrUnknownSeries) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve test series!", nil)
	}

	counts, err := testseries.PublicSummary(database.Database.Db, key)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch summary!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Summary fetched successfully!", fiber.Map{
		"series":   key.Canonical(),
		"subjects": counts,
	})
}
