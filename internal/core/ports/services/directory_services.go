package services

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
)

// UnitSvc defines operations on organisational units
type UnitSvc interface {
	CreateUnit(ctx context.Context, req dto.CreateUnitRequest, userID string) (*domain.Unit, error)
	GetUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
}

// UserSvc defines operations on directory users
type UserSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListNotificationTargets returns the active users to notify: admins when unitID is empty,
	// otherwise members of that unit.
	ListNotificationTargets(ctx context.Context, unitID string) ([]domain.User, error)

	// EnsureAdmin creates the first administrator if the username is free.
	EnsureAdmin(ctx context.Context, username, password string) error
}

// DirectorySvcFacade combines unit and user directory operations
type DirectorySvcFacade interface {
	UnitSvc
	UserSvc
}
