package membership

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/events"
)

type Auditor interface {
	Audit(ctx context.Context) (*AuditReport, error)
}

// EventHandler re-audits the counters after every committed membership change
// and logs the change itself as an audit trail entry.
type EventHandler struct {
	auditor Auditor
	logger  *slog.Logger
}

func NewEventHandler(auditor Auditor, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{auditor: auditor, logger: logger}
}

func (h *EventHandler) HandleMembershipChanged(ctx context.Context, event events.Event) error {
	h.logger.Info("membership changed",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"occurred_at", event.OccurredAt(),
		"payload", event.Payload())

	report, err := h.auditor.Audit(ctx)
	if err != nil {
		h.logger.Error("membership audit failed", "event_id", event.EventID(), "error", err)
		return err
	}
	if report.Inconsistent > 0 {
		h.logger.Warn("membership counters inconsistent after change",
			"event_id", event.EventID(),
			"inconsistent_teams", report.Inconsistent)
	}
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	types := []string{
		events.EventTypeEmployeeCreated,
		events.EventTypeEmployeeTeamChanged,
		events.EventTypeEmployeeDeleted,
	}
	for _, t := range types {
		eventBus.Subscribe(t, h.HandleMembershipChanged)
	}

	h.logger.Info("membership event handlers registered", "handlers", types)
}
