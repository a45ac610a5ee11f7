package visibility

import (
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	planModel "logistics-org/models/plan"
	requestModel "logistics-org/models/request"
	"logistics-org/types"
	authTypes "logistics-org/types/auth"
)

// Request listing scopes.
const (
	ScopeAll  = "all"
	ScopeMine = "mine"
)

// Service narrows what plans and requests a caller may see based on
// the actor's role and home city.
type Service struct {
	db *gorm.DB
}

// NewService creates a visibility service bound to the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListPlans returns the plans visible to the actor. Admins see every
// plan; agents see plans whose route touches their home city
// (case-sensitive match on either endpoint). When onDay is set, only
// plans departing that calendar day are returned.
func (s *Service) ListPlans(actor authTypes.Actor, onDay *time.Time) ([]planModel.Plan, error) {
	q := s.db.Model(&planModel.Plan{}).Order("created_at DESC")

	switch {
	case actor.IsAdmin():
		// no filter
	case actor.IsAgent():
		q = q.Where("route_from = ? OR route_to = ?", actor.City, actor.City)
	default:
		return nil, types.ErrPermissionDenied
	}

	if onDay != nil {
		day := now.With(*onDay)
		q = q.Where("starting_time BETWEEN ? AND ?", day.BeginningOfDay(), day.EndOfDay())
	}

	var plans []planModel.Plan
	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// ListRequests returns requests for the given scope. Admins may list
// everything (ScopeAll); agents may list their own submissions
// (ScopeMine). Every other role/scope combination is denied.
func (s *Service) ListRequests(actor authTypes.Actor, scope string) ([]requestModel.Request, error) {
	q := s.db.Model(&requestModel.Request{}).
		Preload("Plan").
		Preload("StatusHistory").
		Order("created_at DESC")

	switch {
	case actor.IsAdmin() && scope == ScopeAll:
		// no filter
	case actor.IsAgent() && scope == ScopeMine:
		q = q.Where("agent_id = ?", actor.ID)
	default:
		return nil, types.ErrPermissionDenied
	}

	var requests []requestModel.Request
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
