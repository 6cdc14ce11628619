package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/middleware"
	"github.com/google/uuid"
)

// eventNotifier fans a committed workflow event out to the users who should see it.
// Failures are logged and never returned: the state change has already committed.
type eventNotifier struct {
	publisher portssvc.EventPublisher
	users     portsrepo.UserRepositoryFacade
}

func (n *eventNotifier) toAdmins(ctx context.Context, event domain.Event) {
	n.publish(ctx, event, domain.RoleAdmin, "")
}

func (n *eventNotifier) toUnit(ctx context.Context, unitID string, event domain.Event) {
	n.publish(ctx, event, domain.RoleUnit, unitID)
}

func (n *eventNotifier) publish(ctx context.Context, event domain.Event, role domain.UserRole, unitID string) {
	if n == nil || n.publisher == nil {
		return
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	ctx = context.WithoutCancel(ctx)

	targets, err := n.users.ListActiveUsers(ctx, role, unitID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to resolve notification targets",
			slog.String("event", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	for _, u := range targets {
		n.publisher.Publish(ctx, event, u.UserID)
	}
}
