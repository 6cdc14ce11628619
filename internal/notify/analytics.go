package notify

import (
	"context"
	"maps"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// Enqueuer accepts analytics captures. *utils.PosthogClientWrapper satisfies it.
type Enqueuer interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// AnalyticsSink records workflow events as analytics captures keyed by the target user.
type AnalyticsSink struct {
	client Enqueuer
}

// NewAnalyticsSink returns nil when the client is not configured.
func NewAnalyticsSink(client Enqueuer) *AnalyticsSink {
	if client == nil || !client.IsInitialized() {
		return nil
	}
	return &AnalyticsSink{client: client}
}

func (s *AnalyticsSink) Name() string { return "analytics" }

func (s *AnalyticsSink) Deliver(_ context.Context, event domain.Event, targetUserID string) error {
	props := map[string]any{
		"event_id": event.EventID,
		"quantity": event.Quantity,
	}
	if event.RequestID != "" {
		props["request_id"] = event.RequestID
	}
	if event.ItemID != "" {
		props["item_id"] = event.ItemID
	}
	if event.Status != "" {
		props["status"] = string(event.Status)
	}
	maps.Copy(props, event.Properties)
	s.client.Enqueue(targetUserID, string(event.Type), props)
	return nil
}

// Sinks drops unconfigured sinks so callers can pass constructor results directly.
func Sinks(mail *MailSink, analytics *AnalyticsSink) []Sink {
	var out []Sink
	if mail != nil {
		out = append(out, mail)
	}
	if analytics != nil {
		out = append(out, analytics)
	}
	return out
}
