package auth

import (
	"fmt"

	"logistics-org/constants"
)

// Actor is the authenticated caller every core operation receives. It
// is built by the auth middleware from the verified token and the user
// row; the workflow and visibility services treat it as an opaque input
// and never consult process-wide session state.
type Actor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	City     string `json:"city,omitempty"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// IsAgent reports whether the actor holds the agent role.
func (a Actor) IsAgent() bool {
	return a.Role == constants.RoleAgent
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
