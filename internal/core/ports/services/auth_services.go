package services

import (
	"context"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// TokenValidator verifies a bearer token and re-checks its subject against the directory.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.Principal, error)
}

// AuthSvcFacade issues and validates stateless access tokens
type AuthSvcFacade interface {
	TokenValidator

	// Login checks credentials and returns a signed token with its expiry.
	Login(ctx context.Context, username string, password string) (string, time.Time, *domain.User, error)
}
