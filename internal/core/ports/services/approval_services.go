package services

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
)

// ApprovalSvcFacade drives every request state transition. Each call is one transaction.
type ApprovalSvcFacade interface {
	// MoveToReview moves PENDING to APPROVAL_REVIEW without touching stock.
	MoveToReview(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error)

	// Approve moves PENDING to APPROVED for the requested quantity.
	Approve(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error)

	// Finalize moves APPROVAL_REVIEW to APPROVED for an adjusted quantity.
	Finalize(ctx context.Context, requestID string, req dto.FinalizeRequest, actor domain.Principal) (*domain.Request, error)

	// Reject moves PENDING or APPROVAL_REVIEW to REJECTED.
	Reject(ctx context.Context, requestID string, req dto.RejectRequest, actor domain.Principal) (*domain.Request, error)

	// RecordIntakeAndHandout moves an approved procurement request to FINISHED,
	// receiving the purchased stock and handing out the approved quantity.
	RecordIntakeAndHandout(ctx context.Context, requestID string, req dto.HandoutRequest, actor domain.Principal) (*domain.Request, error)
}
