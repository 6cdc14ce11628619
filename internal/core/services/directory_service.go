package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/SscSPs/atk_inventory_app/internal/utils"
	"github.com/google/uuid"
)

// DirectoryService manages units and users.
type DirectoryService struct {
	BaseService
	unitRepo portsrepo.UnitRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(unitRepo portsrepo.UnitRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *DirectoryService {
	return &DirectoryService{
		BaseService: newBaseService(),
		unitRepo:    unitRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.DirectorySvcFacade = (*DirectoryService)(nil)

func (s *DirectoryService) CreateUnit(ctx context.Context, req dto.CreateUnitRequest, userID string) (*domain.Unit, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	unit := domain.Unit{
		UnitID:      uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.unitRepo.SaveUnit(ctx, unit); err != nil {
		s.LogError(ctx, err, "Failed to create unit", slog.String("name", unit.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Unit created", slog.String("unit_id", unit.UnitID), slog.String("name", unit.Name))
	return &unit, nil
}

func (s *DirectoryService) GetUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	return s.unitRepo.FindUnitByID(ctx, unitID)
}

func (s *DirectoryService) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	return s.unitRepo.ListUnits(ctx)
}

// CreateUser registers an active user. UNIT users must belong to an existing unit.
func (s *DirectoryService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	var unitID *string
	if req.UnitID != nil && *req.UnitID != "" {
		if _, err := s.unitRepo.FindUnitByID(ctx, *req.UnitID); err != nil {
			return nil, err
		}
		unitID = req.UnitID
	}
	if req.Role == domain.RoleUnit && unitID == nil {
		return nil, fmt.Errorf("%w: unit users need a unit", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		UnitID:       unitID,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(creatorID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to create user", slog.String("username", user.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *DirectoryService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *DirectoryService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *DirectoryService) ListNotificationTargets(ctx context.Context, unitID string) ([]domain.User, error) {
	if unitID == "" {
		return s.userRepo.ListActiveUsers(ctx, domain.RoleAdmin, "")
	}
	return s.userRepo.ListActiveUsers(ctx, domain.RoleUnit, unitID)
}

// EnsureAdmin creates the first administrator when username is not taken yet.
// It is a no-op when username or password is empty.
func (s *DirectoryService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	_, err = s.CreateUser(ctx, dto.CreateUserRequest{
		Username: username,
		Password: password,
		Name:     "Administrator",
		Role:     domain.RoleAdmin,
	}, domain.SystemUserID)
	if errors.Is(err, apperrors.ErrDuplicate) {
		return nil
	}
	return err
}
