package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/successfulca300-tech/ca-successfull-sub000/database"
	"github.com/successfulca300-tech/ca-successfull-sub000/middleware"
	tsModels "github.com/successfulca300-tech/ca-successfull-sub000/models/testseries"
	"github.com/successfulca300-tech/ca-successfull-sub000/testseries"
	"github.com/successfulca300-tech/ca-successfull-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminUpdateTestSeries edits the managed record of a tier,
// materializing it first when only the shorthand exists
func AdminUpdateTestSeries(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(string)

	reqData, ok := c.Locals("validatedSeriesUpdate").(*struct {
		Title            string   `json:"title"`
		Description      string   `json:"description"`
		Subjects         []string `json:"subjects"`
		SubjectUnitPrice uint     `json:"subject_unit_price"`
		IsPublished      *bool    `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reg := registry()

	key, err := reg.Resolve(seriesID)
	if err != nil {
		if errors.Is(err, testseries.ErrUnknownSeries) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve test series!", nil)
	}

	// Edits persist, so a provisional key must become a managed record
	key, err = reg.Materialize(key)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to materialize test series!", nil)
	}

	db := database.Database.Db

	var series tsModels.TestSeries
	if err := db.Where("id = ?", key.SeriesID).First(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
	}

	if reqData.Title != "" {
		series.Title = reqData.Title
	}
	if reqData.Description != "" {
		series.Description = reqData.Description
	}
	if len(reqData.Subjects) > 0 {
		subjects, err := json.Marshal(reqData.Subjects)
		if err == nil {
			series.Subjects = subjects
		}
	}
	if reqData.SubjectUnitPrice > 0 {
		series.SubjectUnitPrice = reqData.SubjectUnitPrice
	}
	if reqData.IsPublished != nil {
		series.IsPublished = *reqData.IsPublished
	}

	if err := db.Save(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update test series!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test series updated successfully!", series)
}

// AdminUploadPaper stores a paper blob and creates its record under
// the canonical series reference
func AdminUploadPaper(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(string)

	reqData, ok := c.Locals("validatedPaper").(*struct {
		GroupName      string
		Subject        string
		SeriesInstance string
		PaperType      string
		Title          string
		Publish        bool
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reg := registry()

	key, err := reg.Resolve(seriesID)
	if err != nil {
		if errors.Is(err, testseries.ErrUnknownSeries) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve test series!", nil)
	}
	key, err = reg.Materialize(key)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to materialize test series!", nil)
	}

	def, err := reg.EffectiveTier(key)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load tier configuration!", nil)
	}

	// The series-instance field is only meaningful for the
	// multi-instance tier
	if def.MultiInstance && reqData.SeriesInstance == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "series_instance is required for this tier!", nil)
	}
	if !def.MultiInstance && reqData.SeriesInstance != "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "series_instance is not valid for this tier!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Paper file is required!", nil)
	}

	// Blob write failure aborts before any database mutation
	blobRef, fileURL, err := utils.SaveUploadedFile(file)
	if err != nil {
		log.Printf("Error saving paper file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store paper file!", nil)
	}

	paper := tsModels.Paper{
		SeriesRef:      key.Canonical(),
		GroupName:      reqData.GroupName,
		Subject:        reqData.Subject,
		SeriesInstance: reqData.SeriesInstance,
		PaperType:      reqData.PaperType,
		Title:          reqData.Title,
		BlobRef:        blobRef,
		FileURL:        fileURL,
		IsPublished:    reqData.Publish,
	}

	if err := database.Database.Db.Create(&paper).Error; err != nil {
		log.Printf("Error saving paper record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save paper!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Paper uploaded successfully!", paper)
}

// AdminAttachMedia stores a media blob and swaps it in as the active
// asset for (series, kind)
func AdminAttachMedia(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(string)
	kind := c.Locals("mediaKind").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Media file is required!", nil)
	}

	// Blob write failure aborts before any database mutation
	blobRef, publicURL, err := utils.SaveUploadedFile(file)
	if err != nil {
		log.Printf("Error saving media file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store media file!", nil)
	}

	media := testseries.NewMediaService(database.Database.Db, registry())

	asset, err := media.Attach(seriesID, kind, blobRef, publicURL)
	if err != nil {
		if errors.Is(err, testseries.ErrUnknownSeries) {
			utils.DeleteBlob(blobRef)
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test series not found!", nil)
		}
		if errors.Is(err, testseries.ErrMetadataNotSaved) {
			// The blob itself is safe; the sweeper reconciles or the
			// admin re-attaches
			return middleware.JsonResponse(c, fiber.StatusOK, true,
				"Media uploaded! Saving its metadata failed and will need a re-attach.", fiber.Map{
					"blob_ref":   blobRef,
					"public_url": publicURL,
				})
		}
		utils.DeleteBlob(blobRef)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach media!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Media attached successfully!", asset)
}
