package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"logistics-org/logger"
	"logistics-org/middleware"
	planModel "logistics-org/models/plan"
	"logistics-org/services/visibility"
	"logistics-org/types"
	planTypes "logistics-org/types/plan"
	"logistics-org/utils"
)

// PlanController handles plan-related HTTP requests
type PlanController struct {
	DB         *gorm.DB
	Logger     *logger.AsyncLogger
	Visibility *visibility.Service
}

// NewPlanController creates a new plan controller
func NewPlanController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PlanController {
	return &PlanController{
		DB:         db,
		Logger:     asyncLogger,
		Visibility: visibility.NewService(db),
	}
}

// Index lists the plans visible to the caller. Admins see everything;
// agents see plans whose route touches their home city. An optional
// ?date=YYYY-MM-DD query narrows the listing to that departure day.
func (pc *PlanController) Index(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var onDay *time.Time
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid date. Use YYYY-MM-DD",
			})
		}
		onDay = &day
	}

	plans, err := pc.Visibility.ListPlans(actor, onDay)
	if err != nil {
		if errors.Is(err, types.ErrPermissionDenied) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Unauthorized role",
			})
		}
		logger.Error("Failed to list plans", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Plans fetched successfully",
		Data:    plans,
	})
}

// Store publishes a new plan. Admin only (enforced by route middleware).
func (pc *PlanController) Store(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var req planTypes.PlanCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse plan request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if msgs := req.Validate(); len(msgs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Status:  fiber.StatusBadRequest,
			Message: msgs[0],
			Errors:  msgs,
		})
	}

	newPlan := planModel.Plan{
		Uuid:             uuid.NewString(),
		VehicleType:      req.VehicleType,
		VehicleNumber:    req.VehicleNumber,
		NumberOfVehicles: req.NumberOfVehicles,
		Route: planModel.Route{
			From:              req.Route.From,
			To:                req.Route.To,
			EstimatedDistance: req.Route.EstimatedDistance,
			EstimatedDuration: req.Route.EstimatedDuration,
		},
		StartingTime:         req.StartingTime,
		EstimatedArrivalTime: req.EstimatedArrivalTime,
		Capacity:             req.Capacity,
		AvailableCapacity:    req.AvailableCapacity,
		Status:               planModel.PlanStatusActive,
		Notes:                req.Notes,
		CreatedByID:          actor.ID,
	}

	if err := pc.DB.Create(&newPlan).Error; err != nil {
		logger.Error("Failed to create plan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save plan",
		})
	}

	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Plan created successfully with ID: %d", newPlan.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Plan created successfully",
		Data:    newPlan,
	})
}
