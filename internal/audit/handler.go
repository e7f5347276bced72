package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

type Recorder interface {
	Record(ctx context.Context, entry domain.ActionEntry) error
}

// Handler turns order events into action-log rows. Unknown event types are
// logged and skipped so old workers survive new event kinds.
type Handler struct {
	recorder Recorder
	logger   *slog.Logger
}

func NewHandler(recorder Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		recorder: recorder,
		logger:   logger,
	}
}

func (h *Handler) Handle(ctx context.Context, eventType string, payload []byte) error {
	var entry domain.ActionEntry

	switch eventType {
	case domain.EventOrderCreated:
		var event domain.OrderCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", eventType, err)
		}
		entry = domain.ActionEntry{
			OrderID:   event.OrderID,
			Action:    eventType,
			Detail:    fmt.Sprintf("guest %s placed an order of %d lines for %d", event.GuestID, len(event.Lines), event.Payment),
			CreatedAt: event.Timestamp,
		}

	case domain.EventOrderUpdated:
		var event domain.OrderUpdatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", eventType, err)
		}
		entry = domain.ActionEntry{
			OrderID:   event.OrderID,
			Action:    eventType,
			Detail:    fmt.Sprintf("order updated, payment now %d", event.Payment),
			CreatedAt: event.Timestamp,
		}

	case domain.EventOrderStatusChanged:
		var event domain.OrderStatusChangedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", eventType, err)
		}
		entry = domain.ActionEntry{
			OrderID:   event.OrderID,
			Action:    eventType,
			Detail:    fmt.Sprintf("status %s -> %s", event.OldStatus, event.NewStatus),
			CreatedAt: event.Timestamp,
		}

	default:
		h.logger.Warn("skipping unknown event type", "event_type", eventType)
		return nil
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := h.recorder.Record(ctx, entry); err != nil {
		return fmt.Errorf("record action: %w", err)
	}

	h.logger.Info("action recorded", "order_id", entry.OrderID, "action", entry.Action)
	return nil
}
