package main

import (
	"context"
	"courseforge/config"
	controllers "courseforge/controllers/course"
	"courseforge/database"
	courseRoutes "courseforge/routers/courseRoutes"
	"courseforge/utils"
	"log"

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
		AllowMethods: "GET,POST,PATCH,DELETE",      // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	ctx := context.Background()
	cfg := config.AppConfig

	var gemini *utils.GeminiService
	if svc, err := utils.NewGeminiService(ctx, cfg.GeminiApiKey, cfg.GeminiModel); err != nil {
		log.Printf("Gemini unavailable: %v", err)
	} else {
		gemini = svc
		defer gemini.Close()
	}

	var youtube *utils.YoutubeService
	if svc, err := utils.NewYoutubeService(ctx, cfg.YoutubeApiKey); err != nil {
		log.Printf("YouTube search unavailable: %v", err)
	} else {
		youtube = svc
	}

	var blob *utils.BlobStorage
	if b, err := utils.NewBlobStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
		cfg.MinioBucket, cfg.MinioUseSSL, cfg.MinioPublicURL); err != nil {
		log.Printf("Blob storage unavailable: %v", err)
	} else {
		blob = b
	}

	thumbnails := utils.NewThumbnailResolver(cfg.GoogleSearchApiKey, cfg.GoogleSearchCx, cfg.PexelsApiKey, blob)

	queue := utils.NewEnrichmentQueue(cfg.EnrichmentWorkers, 64)
	defer queue.Close()

	// Controller package vars stay nil-aware: a missing provider disables the
	// matching operation instead of crashing at startup.
	var generator controllers.OutlineGenerator
	if gemini != nil {
		generator = gemini
	}
	var videos controllers.VideoFinder
	if youtube != nil {
		videos = youtube
	}
	var uploader controllers.Uploader
	if blob != nil {
		uploader = blob
	}
	controllers.Setup(generator, videos, thumbnails, uploader, queue)

	courseRoutes.SetupCourseRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
