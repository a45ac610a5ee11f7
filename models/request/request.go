package request

import (
	"time"

	"logistics-org/models/plan"
	"logistics-org/models/user"
)

// Dimensions is the optional box measurement embedded in a Request.
type Dimensions struct {
	Length *float64 `gorm:"type:numeric" json:"length,omitempty"`
	Width  *float64 `gorm:"type:numeric" json:"width,omitempty"`
	Height *float64 `gorm:"type:numeric" json:"height,omitempty"`
}

// Request represents a cargo request an agent submits against a plan.
// Its status is mutated only through the workflow engine, which also
// maintains the append-only StatusHistory.
type Request struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid string `gorm:"type:varchar(255);not null;unique" json:"uuid"`

	// Foreign key for the plan this cargo rides on
	PlanID uint      `gorm:"not null;index" json:"plan_id"`
	Plan   plan.Plan `gorm:"foreignKey:PlanID" json:"plan"`

	// Foreign key for the submitting agent
	AgentID uint      `gorm:"not null;index" json:"agent_id"`
	Agent   user.User `gorm:"foreignKey:AgentID" json:"agent"`

	BoxCount   int        `gorm:"not null" json:"box_count"`
	Size       CargoSize  `gorm:"type:varchar(20);not null" json:"size"`
	Dimensions Dimensions `gorm:"embedded;embeddedPrefix:dimensions_" json:"dimensions"`
	Weight     float64    `gorm:"type:numeric;not null" json:"weight"`
	Price      float64    `gorm:"type:numeric;not null" json:"price"`

	Description         string `gorm:"type:text" json:"description,omitempty"`
	SpecialInstructions string `gorm:"type:text" json:"special_instructions,omitempty"`
	PickupAddress       string `gorm:"type:text" json:"pickup_address,omitempty"`
	DeliveryAddress     string `gorm:"type:text" json:"delivery_address,omitempty"`
	ContactPerson       string `gorm:"type:varchar(255)" json:"contact_person,omitempty"`
	ContactPhone        string `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`

	Status        RequestStatus        `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StatusHistory []RequestStatusEvent `gorm:"foreignKey:RequestID" json:"status_history"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Request model
func (Request) TableName() string {
	return "requests"
}
