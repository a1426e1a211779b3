package config

import (
	"Employee-Portal-Backend/internal/api/handlers"
	"Employee-Portal-Backend/internal/api/routes"
	"Employee-Portal-Backend/internal/middleware"
	"Employee-Portal-Backend/internal/utils"
	"Employee-Portal-Backend/internal/utils/storage"
	"Employee-Portal-Backend/pkg/jwt"
	"Employee-Portal-Backend/pkg/photo"
	"Employee-Portal-Backend/pkg/user"
	"Employee-Portal-Backend/pkg/weight"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Amsterdam",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	photoRepository := photo.NewPhotoRepository(db)
	weightRepository := weight.NewWeightRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	unwrapper := photo.NewArchiveUnwrapper("")
	photoService := photo.NewPhotoService(photoRepository, userRepository, unwrapper, s3)
	weightService := weight.NewWeightService(weightRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	photoHandler := handlers.NewPhotoHandler(photoService, validator)
	weightHandler := handlers.NewWeightHandler(weightService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		PhotoHandler:  photoHandler,
		WeightHandler: weightHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
