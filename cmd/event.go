package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/distribution-admin/internal/core/events"
	"github.com/frahmantamala/distribution-admin/internal/navigation"
	"github.com/frahmantamala/distribution-admin/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events to check subscriber wiring`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus for testing and debugging`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd.Context(), args[0])
	},
}

var eventData string

// subscribeEvents attaches the server's event handlers. Route permission changes must reach the
// navigation cache before the request that caused them returns, so they are published sync.
func subscribeEvents(bus *events.EventBus, nav *navigation.Service, lg *slog.Logger) {
	bus.Subscribe(events.EventTypeRoutePermissionsChanged, nav.InvalidateOnChange)

	bus.Subscribe(events.EventTypeOrderStatusChanged, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.OrderStatusChangedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event)
		}
		logger.FromOr(ctx, lg).Info("order status changed",
			"event_id", e.EventID(),
			"order_id", e.OrderID,
			"status", e.Status,
			"is_active", e.IsActive,
			"action_by", e.ActionBy)
		return nil
	})

	bus.Subscribe(events.EventTypeQuotationApproved, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.QuotationApprovedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event)
		}
		logger.FromOr(ctx, lg).Info("quotation approved",
			"event_id", e.EventID(),
			"quotation_id", e.QuotationID,
			"approved_by", e.ApprovedBy)
		return nil
	})
}

func publishTestEvent(ctx context.Context, eventType string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lg := logger.LoggerWrapper()

	eventBus := events.NewEventBus(lg)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	var event events.Event
	switch eventType {
	case events.EventTypeOrderStatusChanged:
		event = events.NewOrderStatusChangedEvent(0, "approved", true, eventData, "cli", time.Now())
	case events.EventTypeRoutePermissionsChanged:
		event = events.NewRoutePermissionsChangedEvent("/orders", "cli")
	case events.EventTypeQuotationApproved:
		event = events.NewQuotationApprovedEvent(0, "cli")
	default:
		event = events.BaseEvent{
			ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"message": eventData,
				"source":  "cli-command",
			},
		}
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	if err := eventBus.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	eventBus.Drain()
	lg.Info("test event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
