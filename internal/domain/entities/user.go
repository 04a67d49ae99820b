package entities

import (
	"time"
)

// Role is the access role assigned to a user at registration. Immutable.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleDJ       Role = "DJ"
	RoleCustomer Role = "CUSTOMER"
)

// User represents a registered account
type User struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Credential string    `json:"-" db:"credential"`
	Role       Role      `json:"role" db:"role"`
	// DJProfileID links a DJ-role user to its profile, 1:1, set at registration.
	DJProfileID *string   `json:"dj_profile_id,omitempty" db:"dj_profile_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
