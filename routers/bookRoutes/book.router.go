package bookRoutes

import (
	controllers "github.com/successfulca300-tech/ca-successfull-sub000/controllers/book"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	validators "github.com/successfulca300-tech/ca-successfull-sub000/validators/book"

	"github.com/gofiber/fiber/v2"
)

// SetupBookRoutes sets up public and admin book routes
func SetupBookRoutes(app *fiber.App) {
	bookGroup := app.Group("/book")

	// Public published books
	bookGroup.Get("/list", controllers.ListBooks)

	// Admin book management
	adminGroup := app.Group("/admin/book")
	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, validators.CreateBook(), controllers.AdminCreateBook)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.AdminOnly, validators.BookID(), controllers.AdminPublishBook)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.BookID(), controllers.AdminDeleteBook)
}
