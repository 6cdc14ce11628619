package services

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
)

// RequestReaderSvc defines read operations for item requests
type RequestReaderSvc interface {
	// GetRequest returns a request visible to the caller.
	GetRequest(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error)

	// ListRequests returns the caller's request history.
	ListRequests(ctx context.Context, actor domain.Principal, params dto.ListRequestsParams) ([]domain.Request, error)

	// ListPending returns the non-terminal requests the caller may see:
	// every open request for admins, the caller's own unit otherwise.
	ListPending(ctx context.Context, actor domain.Principal) ([]domain.Request, error)

	// ListAwaitingHandout returns approved procurement requests.
	ListAwaitingHandout(ctx context.Context) ([]domain.Request, error)
}

// RequestWriterSvc defines request filing
type RequestWriterSvc interface {
	CreateRequest(ctx context.Context, req dto.CreateRequestPayload, actor domain.Principal) (*domain.Request, error)
}

// RequestSvcFacade combines all request-related service interfaces
type RequestSvcFacade interface {
	RequestReaderSvc
	RequestWriterSvc
}
