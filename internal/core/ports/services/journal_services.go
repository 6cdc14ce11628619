package services

import (
	"context"
	"io"

	"github.com/SscSPs/atk_inventory_app/internal/dto"
)

// JournalSvcFacade exposes the append-only movement journal
type JournalSvcFacade interface {
	ListOutgoing(ctx context.Context, params dto.ListMovementsParams) (*dto.ListOutgoingMovementsResponse, error)
	ListIncoming(ctx context.Context, params dto.ListMovementsParams) (*dto.ListIncomingMovementsResponse, error)

	// ExportOutgoing writes the matching outgoing movements as an xlsx workbook.
	ExportOutgoing(ctx context.Context, params dto.ListMovementsParams, w io.Writer) error
}
