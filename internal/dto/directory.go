package dto

import (
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// CreateUnitRequest defines the data needed to register a unit.
type CreateUnitRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UnitResponse defines the data returned for a unit.
type UnitResponse struct {
	UnitID    string    `json:"unitID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUnitResponse converts a domain.Unit to UnitResponse DTO
func ToUnitResponse(u *domain.Unit) UnitResponse {
	return UnitResponse{UnitID: u.UnitID, Name: u.Name, CreatedAt: u.CreatedAt}
}

// ToListUnitResponse converts a slice of domain.Unit to UnitResponse DTOs
func ToListUnitResponse(units []domain.Unit) []UnitResponse {
	res := make([]UnitResponse, len(units))
	for i := range units {
		res[i] = ToUnitResponse(&units[i])
	}
	return res
}

// CreateUserRequest defines the data needed to create a directory user.
// UnitID is required for UNIT users and ignored for ADMIN users without one.
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required,min=3,max=50"`
	Password string          `json:"password" binding:"required,min=8"`
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"omitempty,email"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN UNIT"`
	UnitID   *string         `json:"unitID" binding:"required_if=Role UNIT,omitempty,uuid"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID   string          `json:"userID"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Email    string          `json:"email,omitempty"`
	Role     domain.UserRole `json:"role"`
	UnitID   *string         `json:"unitID,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		UnitID:   u.UnitID,
	}
}
