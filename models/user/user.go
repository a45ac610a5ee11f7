package user

import (
	"time"

	"logistics-org/constants"
)

// User is an identity record. Users are created only by the offline
// seeder (database/seeders) and are immutable at runtime.
type User struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string  `gorm:"type:varchar(255);not null;unique" json:"username"`
	Password string  `gorm:"type:varchar(255);not null" json:"-"`
	Role     string  `gorm:"type:varchar(20);not null" json:"role"`
	City     *string `gorm:"type:varchar(100)" json:"city,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}

// IsAgent reports whether the user holds the agent role.
func (u *User) IsAgent() bool {
	return u.Role == constants.RoleAgent
}

// HomeCity returns the agent's city, or "" for users without one.
func (u *User) HomeCity() string {
	if u.City == nil {
		return ""
	}
	return *u.City
}
