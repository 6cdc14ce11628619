package services

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// EventPublisher delivers a workflow event to one user. It is only called after commit
// and never fails the operation that triggered it.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event, targetUserID string)
}

// EventSubscriber hands out a stream of events for one user.
// The returned cancel func must be called to release the subscription.
type EventSubscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan domain.Event, func())
}

// EventBus is both ends of the notification channel.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
