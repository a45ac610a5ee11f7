package vehicleamount

import (
	"time"

	"github.com/shopspring/decimal"

	"logistics-org/models/request"
)

// ApprovedRequest is one ledger line: a request that transitioned into
// the approved status for this vehicle, at the price it carried then.
type ApprovedRequest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the vehicle ledger relationship
	VehicleAmountID uint `gorm:"not null;index" json:"vehicle_amount_id"`

	RequestID uint            `gorm:"not null;index" json:"request_id"`
	Request   request.Request `gorm:"foreignKey:RequestID" json:"request"`

	Price      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	ApprovedAt time.Time       `gorm:"not null" json:"approved_at"`
}

// TableName sets the table name for the ApprovedRequest model
func (ApprovedRequest) TableName() string {
	return "vehicle_amount_approved_requests"
}
