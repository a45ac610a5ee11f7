package vehicleamount

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleAmount is the running revenue total for one vehicle number.
// Invariant: TotalAmount equals the sum of Price over ApprovedRequests
// at every observable point. Records are created lazily on the first
// approval for a vehicle and never deleted.
type VehicleAmount struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleNumber string          `gorm:"type:varchar(50);not null;unique" json:"vehicle_number"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`

	ApprovedRequests []ApprovedRequest `gorm:"foreignKey:VehicleAmountID" json:"approved_requests"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the VehicleAmount model
func (VehicleAmount) TableName() string {
	return "vehicle_amounts"
}
