package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/platform/config"
	"github.com/SscSPs/atk_inventory_app/internal/utils"
)

// authService issues stateless access tokens and re-checks them against the directory.
// There is no server-side session store.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(),
		cfg:         cfg,
		userRepo:    userRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

var errInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

func (s *authService) Login(ctx context.Context, username string, password string) (string, time.Time, *domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, nil, errInvalidCredentials
		}
		return "", time.Time{}, nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login refused", slog.String("username", username))
		return "", time.Time{}, nil, errInvalidCredentials
	}

	unitID := ""
	if user.UnitID != nil {
		unitID = *user.UnitID
	}
	token, expiresAt, err := utils.GenerateJWT(user.UserID, string(user.Role), unitID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, user, nil
}

// ValidateToken accepts a token only while its subject is an active user whose role and unit
// still match the claims.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrUnauthorized)
	}

	unitID := ""
	if user.UnitID != nil {
		unitID = *user.UnitID
	}
	if string(user.Role) != claims.Role || unitID != claims.UnitID {
		return nil, fmt.Errorf("%w: token claims are stale", apperrors.ErrUnauthorized)
	}

	return &domain.Principal{UserID: user.UserID, Role: user.Role, UnitID: unitID}, nil
}
