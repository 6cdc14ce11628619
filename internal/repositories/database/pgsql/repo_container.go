package pgsql

import (
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    NewTxManager(dbPool),
		ItemRepo:     newPgxItemRepository(dbPool),
		RequestRepo:  newPgxRequestRepository(dbPool),
		QuotaRepo:    newPgxQuotaRepository(dbPool),
		MovementRepo: newPgxMovementRepository(dbPool),
		UnitRepo:     newPgxUnitRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
