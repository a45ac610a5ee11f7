package request

import (
	"time"

	"logistics-org/models/user"
)

// RequestStatusEvent is one entry of a request's status history. The
// history is append-only and holds, in order, every status the request
// has ever held, starting with the pending entry written at creation.
type RequestStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the request relationship
	RequestID uint `gorm:"not null;index" json:"request_id"`

	Status      RequestStatus `gorm:"type:varchar(20);not null" json:"status"`
	UpdatedByID uint          `gorm:"not null" json:"updated_by_id"`
	UpdatedBy   user.User     `gorm:"foreignKey:UpdatedByID" json:"updated_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// TableName sets the table name for the RequestStatusEvent model
func (RequestStatusEvent) TableName() string {
	return "request_status_events"
}
