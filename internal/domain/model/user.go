package model

import (
	"time"
)

// Role is the closed set of account roles. Checks are structural: there is
// no hierarchy, an AdminTier2 cannot perform AdminTier1 actions and vice versa.
type Role string

const (
	RoleCitizen    Role = "Citizen"
	RoleAdminTier1 Role = "AdminTier1"
	RoleAdminTier2 Role = "AdminTier2"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAdminTier1, RoleAdminTier2:
		return true
	}
	return false
}

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// Principal is the authenticated identity + role decoded from a verified
// credential token.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
