package repositories

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// UnitRepositoryFacade defines persistence for organisational units
type UnitRepositoryFacade interface {
	SaveUnit(ctx context.Context, unit domain.Unit) error
	FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
}

// UserRepositoryFacade defines persistence for directory users
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListActiveUsers returns active users, optionally restricted by role and unit.
	ListActiveUsers(ctx context.Context, role domain.UserRole, unitID string) ([]domain.User, error)
}
