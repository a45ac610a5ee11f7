package plan

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RoutePayload is the embedded route section of a plan create request.
type RoutePayload struct {
	From              string   `json:"from" validate:"required"`
	To                string   `json:"to" validate:"required"`
	EstimatedDistance *float64 `json:"estimated_distance" validate:"omitempty,gt=0"`
	EstimatedDuration *float64 `json:"estimated_duration" validate:"omitempty,gt=0"`
}

// PlanCreateRequest represents the request payload for publishing a plan
type PlanCreateRequest struct {
	VehicleType          string       `json:"vehicle_type" validate:"required"`
	VehicleNumber        string       `json:"vehicle_number" validate:"required"`
	NumberOfVehicles     int          `json:"number_of_vehicles" validate:"required,gt=0"`
	Route                RoutePayload `json:"route"`
	StartingTime         time.Time    `json:"starting_time" validate:"required"`
	EstimatedArrivalTime *time.Time   `json:"estimated_arrival_time"`
	Capacity             *float64     `json:"capacity" validate:"omitempty,gt=0"`
	AvailableCapacity    *float64     `json:"available_capacity" validate:"omitempty,gt=0"`
	Notes                string       `json:"notes"`
}

// Validate collects every field violation before returning, so the
// caller sees all problems at once.
func (p PlanCreateRequest) Validate() []string {
	var msgs []string

	if err := validate.Struct(p); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, planFieldMessage(fe))
		}
	}

	if p.Route.From != "" && p.Route.From == p.Route.To {
		msgs = append(msgs, "Origin and destination cannot be the same")
	}

	return msgs
}

func planFieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "VehicleType":
		return "Vehicle type is required"
	case "VehicleNumber":
		return "Vehicle number is required"
	case "NumberOfVehicles":
		if fe.Tag() == "gt" {
			return "Number of vehicles must be a positive number"
		}
		return "Number of vehicles is required"
	case "From":
		return "Route must include an origin"
	case "To":
		return "Route must include a destination"
	case "StartingTime":
		return "Starting time is required"
	case "Capacity":
		return "Capacity must be a positive number"
	case "AvailableCapacity":
		return "Available capacity must be a positive number"
	case "EstimatedDistance":
		return "Estimated distance must be a positive number"
	case "EstimatedDuration":
		return "Estimated duration must be a positive number"
	default:
		return fe.StructField() + " is invalid"
	}
}
