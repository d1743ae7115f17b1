package purchaseRoutes

import (
	controllers "github.com/successfulca300-tech/ca-successfull-sub000/controllers/purchase"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	validators "github.com/successfulca300-tech/ca-successfull-sub000/validators/purchase"

	"github.com/gofiber/fiber/v2"
)

// SetupPurchaseRoutes sets up checkout and payment confirmation routes
func SetupPurchaseRoutes(app *fiber.App) {
	purchaseGroup := app.Group("/purchase")

	purchaseGroup.Post("/checkout", middleware.JWTMiddleware, validators.Checkout(), controllers.Checkout)
	purchaseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetMyPurchases)

	// Gateway webhook; authenticated by signature, not JWT
	app.Post("/webhook/payment", validators.Webhook(), controllers.PaymentWebhook)
}
