package repositories

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RequestReader defines read operations for item requests
type RequestReader interface {
	// FindRequestByID retrieves a request without locking it.
	FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error)

	// ListRequests retrieves requests matching the filter, newest first.
	ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error)
}

// RequestWriter defines write operations for item requests
type RequestWriter interface {
	// SaveRequest persists a new request.
	SaveRequest(ctx context.Context, request domain.Request) error
}

// RequestTransactionSupport defines the lifecycle operations used inside workflow transactions.
type RequestTransactionSupport interface {
	// LockRequestByID selects the request and locks its row until the transaction ends.
	LockRequestByID(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Request, error)

	// UpdateRequestInTx writes the mutable lifecycle fields of the request.
	UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request domain.Request) error
}

// RequestRepositoryFacade combines all request-related repository interfaces
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
	RequestTransactionSupport
}
