package plan

// PlanStatus is the lifecycle state of a transportation plan.
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusInTransit PlanStatus = "in-transit"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

func (ps PlanStatus) String() string {
	return string(ps)
}

func (ps PlanStatus) IsValid() bool {
	switch ps {
	case PlanStatusActive, PlanStatusInTransit, PlanStatusCompleted, PlanStatusCancelled:
		return true
	default:
		return false
	}
}

// GetAllPlanStatuses returns all valid plan statuses
func GetAllPlanStatuses() []PlanStatus {
	return []PlanStatus{
		PlanStatusActive,
		PlanStatusInTransit,
		PlanStatusCompleted,
		PlanStatusCancelled,
	}
}
