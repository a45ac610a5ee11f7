package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"logistics-org/constants"
	authController "logistics-org/controllers/auth"
	planController "logistics-org/controllers/plan"
	requestController "logistics-org/controllers/request"
	"logistics-org/logger"
	"logistics-org/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	auth := authController.NewAuthController(db, asyncLogger)
	plans := planController.NewPlanController(db, asyncLogger)
	requests := requestController.NewRequestController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/auth/login", auth.Login)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	api.Get("/auth/profile", middleware.RequireAuth(), auth.Profile)

	/*=============================================================================
	| Plan Routes
	===============================================================================*/
	planGroup := api.Group("/plans")

	planGroup.Get("/", middleware.RequireRoles(
		constants.RoleAdmin, constants.RoleAgent,
	), plans.Index)

	planGroup.Post("/", middleware.RequireRoles(
		constants.RoleAdmin,
	), plans.Store)

	/*=============================================================================
	| Request Routes
	===============================================================================*/
	requestGroup := api.Group("/requests")

	requestGroup.Get("/", middleware.RequireRoles(
		constants.RoleAdmin,
	), requests.Index)

	requestGroup.Get("/my-requests", middleware.RequireRoles(
		constants.RoleAgent,
	), requests.MyRequests)

	requestGroup.Get("/vehicle-amounts", middleware.RequireRoles(
		constants.RoleAdmin,
	), requests.VehicleAmounts)

	requestGroup.Post("/", middleware.RequireRoles(
		constants.RoleAgent,
	), requests.Store)

	requestGroup.Patch("/:id/status", middleware.RequireRoles(
		constants.RoleAdmin,
	), requests.UpdateStatus)
}
