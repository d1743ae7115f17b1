package courseRoutes

import (
	controllers "github.com/successfulca300-tech/ca-successfull-sub000/controllers/course"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	validators "github.com/successfulca300-tech/ca-successfull-sub000/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up public and admin course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public published courses
	courseGroup.Get("/list", controllers.ListCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourse)

	// Admin course management
	adminGroup := app.Group("/admin/course")
	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseID(), controllers.AdminPublishCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseID(), controllers.AdminDeleteCourse)
}
