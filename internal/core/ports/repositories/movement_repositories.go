package repositories

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MovementWriter appends journal lines. There is no update or delete.
type MovementWriter interface {
	SaveOutgoingInTx(ctx context.Context, tx pgx.Tx, movement domain.OutgoingMovement) error
	SaveIncomingInTx(ctx context.Context, tx pgx.Tx, movement domain.IncomingMovement) error
}

// MovementReader lists journal lines newest first with keyset pagination.
type MovementReader interface {
	// ListOutgoing returns a page and the token for the next page, nil when exhausted.
	ListOutgoing(ctx context.Context, filter domain.MovementFilter) ([]domain.OutgoingMovement, *string, error)

	// ListIncoming returns a page and the token for the next page, nil when exhausted.
	ListIncoming(ctx context.Context, filter domain.MovementFilter) ([]domain.IncomingMovement, *string, error)
}

// MovementRepositoryFacade combines all movement journal interfaces
type MovementRepositoryFacade interface {
	MovementWriter
	MovementReader
}
