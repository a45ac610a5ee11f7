package plan

import (
	"time"

	"logistics-org/models/user"
)

// Route is the origin/destination leg embedded in a Plan.
type Route struct {
	From              string   `gorm:"type:varchar(100);not null" json:"from"`
	To                string   `gorm:"type:varchar(100);not null" json:"to"`
	EstimatedDistance *float64 `gorm:"type:numeric" json:"estimated_distance,omitempty"`
	EstimatedDuration *float64 `gorm:"type:numeric" json:"estimated_duration,omitempty"` // in hours
}

// Plan represents a published transportation plan owned by an admin.
// Capacity fields are advisory; nothing in the approval workflow
// decrements them.
type Plan struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid string `gorm:"type:varchar(255);not null;unique" json:"uuid"`

	VehicleType      string `gorm:"type:varchar(100);not null" json:"vehicle_type"`
	VehicleNumber    string `gorm:"type:varchar(50);not null;index" json:"vehicle_number"`
	NumberOfVehicles int    `gorm:"not null" json:"number_of_vehicles"`

	Route Route `gorm:"embedded;embeddedPrefix:route_" json:"route"`

	StartingTime         time.Time  `gorm:"not null;index" json:"starting_time"`
	EstimatedArrivalTime *time.Time `json:"estimated_arrival_time,omitempty"`
	Capacity             *float64   `gorm:"type:numeric" json:"capacity,omitempty"`           // total capacity in kg
	AvailableCapacity    *float64   `gorm:"type:numeric" json:"available_capacity,omitempty"` // remaining capacity in kg
	Status               PlanStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Notes                string     `gorm:"type:text" json:"notes,omitempty"`

	// Foreign key for the owning admin
	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   user.User `gorm:"foreignKey:CreatedByID" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Plan model
func (Plan) TableName() string {
	return "plans"
}
