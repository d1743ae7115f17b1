package testseriesRoutes

import (
	controllers "github.com/successfulca300-tech/ca-successfull-sub000/controllers/testseries"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	validators "github.com/successfulca300-tech/ca-successfull-sub000/validators/testseries"

	"github.com/gofiber/fiber/v2"
)

// SetupTestSeriesRoutes sets up the test series engine routes
func SetupTestSeriesRoutes(app *fiber.App) {
	seriesGroup := app.Group("/test-series")

	// Resolve-and-price; public so the storefront can quote before login
	seriesGroup.Post("/quote", validators.Quote(), controllers.QuoteTestSeries)

	// Public aggregate counts only, never paper rows
	seriesGroup.Get("/:id/summary", validators.SeriesID(), controllers.PublicSeriesSummary)

	// Entitlement-gated content
	seriesGroup.Get("/:id/entitlement", middleware.JWTMiddleware, validators.SeriesID(), controllers.CheckEntitlement)
	seriesGroup.Get("/:id/papers", middleware.JWTMiddleware, validators.SeriesID(), controllers.ListPapers)

	// Admin content and media management
	adminGroup := app.Group("/admin/test-series")
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.SeriesID(), validators.UpdateSeries(), controllers.AdminUpdateTestSeries)
	adminGroup.Post("/:id/papers", middleware.JWTMiddleware, middleware.AdminOnly, validators.SeriesID(), validators.UploadPaper(), controllers.AdminUploadPaper)
	adminGroup.Post("/:id/media", middleware.JWTMiddleware, middleware.AdminOnly, validators.SeriesID(), validators.AttachMedia(), controllers.AdminAttachMedia)
}
