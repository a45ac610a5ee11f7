package workflow

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	planModel "logistics-org/models/plan"
	requestModel "logistics-org/models/request"
	"logistics-org/models/vehicleamount"
	"logistics-org/types"
	authTypes "logistics-org/types/auth"
	requestTypes "logistics-org/types/request"
)

// Engine is the request workflow: it owns every status mutation of a
// cargo request and the vehicle ledger roll-up that approval triggers.
// The status write and the ledger write commit in one transaction, so a
// failed approval leaves both untouched.
type Engine struct {
	db           *gorm.DB
	vehicleLocks *vehicleLockSet
}

// NewEngine creates a workflow engine bound to the given database.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:           db,
		vehicleLocks: newVehicleLockSet(),
	}
}

// SubmitRequest creates a pending cargo request for the actor against
// an existing plan. The status history starts with exactly one pending
// entry; the vehicle ledger is not touched here.
func (e *Engine) SubmitRequest(actor authTypes.Actor, payload requestTypes.RequestCreateRequest) (*requestModel.Request, error) {
	if msgs := payload.Validate(); len(msgs) > 0 {
		return nil, types.NewValidationError(msgs...)
	}

	var targetPlan planModel.Plan
	if err := e.db.First(&targetPlan, payload.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrPlanNotFound
		}
		return nil, err
	}

	req := requestModel.Request{
		Uuid:                uuid.NewString(),
		PlanID:              targetPlan.ID,
		AgentID:             actor.ID,
		BoxCount:            payload.BoxCount,
		Size:                requestModel.CargoSize(payload.Size),
		Weight:              payload.Weight,
		Price:               payload.Price,
		Description:         payload.Description,
		SpecialInstructions: payload.SpecialInstructions,
		PickupAddress:       payload.PickupAddress,
		DeliveryAddress:     payload.DeliveryAddress,
		ContactPerson:       payload.ContactPerson,
		ContactPhone:        payload.ContactPhone,
		Status:              requestModel.RequestStatusPending,
	}
	if payload.Dimensions != nil {
		req.Dimensions = requestModel.Dimensions{
			Length: payload.Dimensions.Length,
			Width:  payload.Dimensions.Width,
			Height: payload.Dimensions.Height,
		}
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&req).Error; err != nil {
			return err
		}

		event := requestModel.RequestStatusEvent{
			RequestID:   req.ID,
			Status:      requestModel.RequestStatusPending,
			UpdatedByID: actor.ID,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	var created requestModel.Request
	if err := e.db.Preload("Plan").Preload("StatusHistory").First(&created, req.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// ChangeStatus moves a request to newStatus and appends a status
// history entry. The status set is flat: any status may follow any
// other. When newStatus is approved, the request's price is also rolled
// into the VehicleAmount ledger for the plan's vehicle number, inside
// the same transaction as the status write.
func (e *Engine) ChangeStatus(requestID uint, newStatus string, actor authTypes.Actor) (*requestModel.Request, error) {
	status := requestModel.RequestStatus(newStatus)
	if !status.IsValid() {
		return nil, types.NewValidationError("Invalid status. Must be pending, approved, rejected, in-transit, delivered, or cancelled")
	}
	if !actor.IsAdmin() {
		return nil, types.ErrPermissionDenied
	}

	var req requestModel.Request
	if err := e.db.Preload("Plan").First(&req, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrRequestNotFound
		}
		return nil, err
	}

	approving := status == requestModel.RequestStatusApproved
	if approving {
		if req.Plan.ID == 0 || req.Plan.VehicleNumber == "" {
			return nil, types.NewValidationError("Invalid plan data for this request")
		}
		// Serialize the ledger read-modify-write per vehicle so two
		// concurrent approvals never both read the same stale total.
		unlock := e.vehicleLocks.Lock(req.Plan.VehicleNumber)
		defer unlock()
	}

	now := time.Now()
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&requestModel.Request{}).
			Where("id = ?", req.ID).
			Updates(map[string]interface{}{"status": status, "updated_at": now}).Error; err != nil {
			return err
		}

		event := requestModel.RequestStatusEvent{
			RequestID:   req.ID,
			Status:      status,
			UpdatedByID: actor.ID,
			CreatedAt:   now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if approving {
			return e.creditVehicleLedger(tx, &req, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated requestModel.Request
	if err := e.db.Preload("Plan").Preload("StatusHistory").First(&updated, req.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// creditVehicleLedger accumulates the request's price into the
// VehicleAmount row for the plan's vehicle number, creating the row on
// the first approval. No idempotence check is made on the request ID:
// re-approving an already approved request credits the ledger again,
// matching the deployed behavior this service replaced.
func (e *Engine) creditVehicleLedger(tx *gorm.DB, req *requestModel.Request, now time.Time) error {
	price := decimal.NewFromFloat(req.Price)

	var ledger vehicleamount.VehicleAmount
	err := tx.Where("vehicle_number = ?", req.Plan.VehicleNumber).First(&ledger).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ledger = vehicleamount.VehicleAmount{
			VehicleNumber: req.Plan.VehicleNumber,
			TotalAmount:   price,
			UpdatedAt:     now,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		ledger.TotalAmount = ledger.TotalAmount.Add(price)
		ledger.UpdatedAt = now
		if err := tx.Save(&ledger).Error; err != nil {
			return err
		}
	}

	entry := vehicleamount.ApprovedRequest{
		VehicleAmountID: ledger.ID,
		RequestID:       req.ID,
		Price:           price,
		ApprovedAt:      now,
	}
	return tx.Create(&entry).Error
}

// VehicleLedger returns every VehicleAmount record with its approved
// entries resolved down to the request and its parent plan. Admin only.
func (e *Engine) VehicleLedger(actor authTypes.Actor) ([]vehicleamount.VehicleAmount, error) {
	if !actor.IsAdmin() {
		return nil, types.ErrPermissionDenied
	}

	var ledgers []vehicleamount.VehicleAmount
	err := e.db.
		Preload("ApprovedRequests").
		Preload("ApprovedRequests.Request").
		Preload("ApprovedRequests.Request.Plan").
		Order("vehicle_number").
		Find(&ledgers).Error
	if err != nil {
		return nil, err
	}
	return ledgers, nil
}
