package authRoutes

import (
	authControllers "github.com/successfulca300-tech/ca-successfull-sub000/controllers/auth"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	authValidators "github.com/successfulca300-tech/ca-successfull-sub000/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.GetProfile)
}
