package routes

import (
	"Employee-Portal-Backend/internal/api/handlers"
	"Employee-Portal-Backend/internal/middleware"
	"Employee-Portal-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	PhotoHandler  handlers.PhotoHandler
	WeightHandler handlers.WeightHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Photos()
	c.Measurements()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Photos() {
	photos := c.App.Group("/api/v1/photos", c.Middleware.AuthMiddleware(c.JWTService))

	photos.Post("/upload-batch", c.PhotoHandler.UploadPhotoBatch)
	photos.Post("/upload", c.PhotoHandler.UploadPhoto)
	photos.Get("", c.PhotoHandler.GetUploadedPhotos)
}

func (c *Config) Measurements() {
	measurements := c.App.Group("/api/v1/measurements", c.Middleware.AuthMiddleware(c.JWTService))

	measurements.Post("/upload-csv", c.WeightHandler.UploadWeightCSV)
	measurements.Get("", c.WeightHandler.GetWeightData)
	measurements.Get("/latest-datetime", c.WeightHandler.GetLatestDatetime)
	measurements.Get("/summary", c.WeightHandler.GetSummary)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
