package controllers

import (
	"github.com/successfulca300-tech/ca-successfull-sub000/database"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	"github.com/successfulca300-tech/ca-successfull-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateBook creates a new book
func AdminCreateBook(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBook").(*struct {
		Title       string `json:"title"`
		Author      string `json:"author"`
		Description string `json:"description"`
		Price       uint   `json:"price"`
		CoverURL    string `json:"cover_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	book := models.Book{
		Title:       reqData.Title,
		Author:      reqData.Author,
		Description: reqData.Description,
		Price:       reqData.Price,
		CoverURL:    reqData.CoverURL,
	}

	if err := database.Database.Db.Create(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Book created successfully!", book)
}

// AdminPublishBook marks a book as published
func AdminPublishBook(c *fiber.Ctx) error {
	bookID := c.Locals("bookID").(int)

	var book models.Book
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", bookID, false).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}

	book.IsPublished = true
	if err := database.Database.Db.Save(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book published successfully!", book)
}

// AdminDeleteBook soft deletes a book
func AdminDeleteBook(c *fiber.Ctx) error {
	bookID := c.Locals("bookID").(int)

	var book models.Book
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", bookID, false).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}

	book.IsDeleted = true
	if err := database.Database.Db.Save(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book deleted successfully!", nil)
}

// ListBooks returns published books for public browsing
func ListBooks(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Book{}).
		Where("is_published = ? AND is_deleted = ?", true, false)

	var total int64
	db.Count(&total)

	var books []models.Book
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&books).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch books!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Books fetched successfully!", fiber.Map{
		"books": books,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
