package main

import (
	"log"

	"github.com/successfulca300-tech/ca-successfull-sub000/config"
	"github.com/successfulca300-tech/ca-successfull-sub000/database"
	authRoutes "github.com/successfulca300-tech/ca-successfull-sub000/routers/authRoutes"
	bookRoutes "github.com/successfulca300-tech/ca-successfull-sub000/routers/bookRoutes"
	courseRoutes "github.com/successfulca300-tech/ca-successfull-sub000/routers/courseRoutes"
	purchaseRoutes "github.com/successfulca300-tech/ca-successfull-sub000/routers/purchaseRoutes"
	testseriesRoutes "github.com/successfulca300-tech/ca-successfull-sub000/routers/testseriesRoutes"
	"github.com/successfulca300-tech/ca-successfull-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded blobs
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	bookRoutes.SetupBookRoutes(app)
	testseriesRoutes.SetupTestSeriesRoutes(app)
	purchaseRoutes.SetupPurchaseRoutes(app)

	utils.InitializeMediaSweeper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
