package request

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DimensionsPayload is the optional box measurement section.
type DimensionsPayload struct {
	Length *float64 `json:"length" validate:"omitempty,gt=0"`
	Width  *float64 `json:"width" validate:"omitempty,gt=0"`
	Height *float64 `json:"height" validate:"omitempty,gt=0"`
}

// RequestCreateRequest represents the payload an agent submits to place
// cargo on a plan.
type RequestCreateRequest struct {
	PlanID              uint               `json:"plan_id" validate:"required"`
	BoxCount            int                `json:"box_count" validate:"required,gt=0"`
	Size                string             `json:"size" validate:"required,oneof=big small unsized"`
	Dimensions          *DimensionsPayload `json:"dimensions"`
	Weight              float64            `json:"weight" validate:"required,gt=0"`
	Price               float64            `json:"price" validate:"required,gt=0"`
	Description         string             `json:"description"`
	SpecialInstructions string             `json:"special_instructions"`
	PickupAddress       string             `json:"pickup_address"`
	DeliveryAddress     string             `json:"delivery_address"`
	ContactPerson       string             `json:"contact_person"`
	ContactPhone        string             `json:"contact_phone"`
}

// Validate collects every field violation before returning.
func (r RequestCreateRequest) Validate() []string {
	var msgs []string

	if err := validate.Struct(r); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, requestFieldMessage(fe))
		}
	}

	return msgs
}

func requestFieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "PlanID":
		return "Plan ID is required"
	case "BoxCount":
		if fe.Tag() == "gt" {
			return "Box count must be a positive number"
		}
		return "Box count is required"
	case "Size":
		if fe.Tag() == "oneof" {
			return "Invalid size. Must be big, small, or unsized"
		}
		return "Size is required"
	case "Weight":
		if fe.Tag() == "gt" {
			return "Weight must be a positive number"
		}
		return "Weight is required"
	case "Price":
		if fe.Tag() == "gt" {
			return "Price must be a positive number"
		}
		return "Price is required"
	case "Length", "Width", "Height":
		return "Dimensions must be positive numbers"
	default:
		return fe.StructField() + " is invalid"
	}
}

// UpdateStatusRequest is the payload for PATCH /api/requests/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
