package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxFunc is the unit of work run by TransactionManager.RunInTx.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// RunInTx begins a transaction, calls fn and commits when fn returns nil.
	// Any error or panic from fn rolls the transaction back before RunInTx returns.
	RunInTx(ctx context.Context, fn TxFunc) error
}
