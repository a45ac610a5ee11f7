package request

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"logistics-org/logger"
	"logistics-org/middleware"
	"logistics-org/services/visibility"
	"logistics-org/services/workflow"
	"logistics-org/types"
	requestTypes "logistics-org/types/request"
	"logistics-org/utils"
)

// RequestController handles cargo request HTTP endpoints, delegating
// all status mutations to the workflow engine.
type RequestController struct {
	DB         *gorm.DB
	Logger     *logger.AsyncLogger
	Engine     *workflow.Engine
	Visibility *visibility.Service
}

// NewRequestController creates a new request controller
func NewRequestController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RequestController {
	return &RequestController{
		DB:         db,
		Logger:     asyncLogger,
		Engine:     workflow.NewEngine(db),
		Visibility: visibility.NewService(db),
	}
}

// Index lists every request. Admin only.
func (rc *RequestController) Index(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	requests, err := rc.Visibility.ListRequests(actor, visibility.ScopeAll)
	if err != nil {
		return rc.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Requests fetched successfully",
		Data:    requests,
	})
}

// MyRequests lists the calling agent's own requests.
func (rc *RequestController) MyRequests(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	requests, err := rc.Visibility.ListRequests(actor, visibility.ScopeMine)
	if err != nil {
		return rc.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Requests fetched successfully",
		Data:    requests,
	})
}

// Store submits a new cargo request against a plan. Agent only.
func (rc *RequestController) Store(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var req requestTypes.RequestCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	created, err := rc.Engine.SubmitRequest(actor, req)
	if err != nil {
		return rc.respondError(c, err)
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Request created successfully with ID: %d", created.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Request created successfully",
		Data:    created,
	})
}

// UpdateStatus moves a request to a new status via the workflow engine.
// Admin only.
func (rc *RequestController) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request id",
		})
	}

	var req requestTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse status request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Status is required",
		})
	}

	updated, err := rc.Engine.ChangeStatus(uint(id), req.Status, actor)
	if err != nil {
		return rc.respondError(c, err)
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Request %d moved to status %s", updated.ID, updated.Status))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Request status updated successfully",
		Data:    updated,
	})
}

// VehicleAmounts lists the per-vehicle revenue ledger. Admin only.
func (rc *RequestController) VehicleAmounts(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	ledgers, err := rc.Engine.VehicleLedger(actor)
	if err != nil {
		return rc.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vehicle amounts fetched successfully",
		Data:    ledgers,
	})
}

// respondError maps workflow/visibility errors onto HTTP statuses.
func (rc *RequestController) respondError(c *fiber.Ctx, err error) error {
	if ve, ok := types.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Status:  fiber.StatusBadRequest,
			Message: ve.Fields[0],
			Errors:  ve.Fields,
		})
	}

	switch {
	case errors.Is(err, types.ErrPlanNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Plan not found",
		})
	case errors.Is(err, types.ErrRequestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Request not found",
		})
	case errors.Is(err, types.ErrPermissionDenied):
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Access denied",
		})
	default:
		logger.Error("Request operation failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
}
