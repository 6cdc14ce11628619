package services

import (
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// bus receives workflow events after commit; it is also exposed for event stream subscriptions.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, bus portssvc.EventBus) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Item:      NewItemService(repos.TxManager, repos.ItemRepo, repos.MovementRepo),
		Request:   NewRequestService(repos.RequestRepo, repos.ItemRepo, repos.UnitRepo, repos.UserRepo, bus),
		Approval:  NewApprovalService(repos, bus),
		Quota:     NewQuotaService(repos.QuotaRepo, repos.ItemRepo, repos.UnitRepo),
		Directory: NewDirectoryService(repos.UnitRepo, repos.UserRepo),
		Auth:      NewAuthService(cfg, repos.UserRepo),
		Journal:   NewJournalService(repos.MovementRepo),
		Events:    bus,
	}
}
