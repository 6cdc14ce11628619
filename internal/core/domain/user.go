package domain

import "time"

// UserRole is the coarse permission level of a directory user.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUnit  UserRole = "UNIT"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUnit
}

// User represents an account in the unit/user directory.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	Role         UserRole `json:"role"`
	UnitID       *string  `json:"unitID,omitempty"` // Required for RoleUnit
	IsActive     bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// BelongsToUnit reports whether the user is a member of unitID.
func (u User) BelongsToUnit(unitID string) bool {
	return u.UnitID != nil && *u.UnitID == unitID
}

// Principal is the authenticated caller of an operation, as verified against the directory.
type Principal struct {
	UserID string
	Role   UserRole
	UnitID string // Empty for admins without a unit
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
