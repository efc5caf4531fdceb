// Package notify delivers workflow notifications to dispatchers.
package notify

import (
	"context"
	"strconv"

	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
)

// EventDeliveryCompleted is the event type header of delivery completion messages.
const EventDeliveryCompleted = "delivery.completed"

// Publisher sends an encoded event to a broker.
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, v any) error
}

// LogNotifier writes notifications to the log. It is used when no broker is configured.
type LogNotifier struct {
	logger logx.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger logx.Logger) *LogNotifier {
	logger = logx.OrNop(logger)
	return &LogNotifier{logger: logger}
}

// NotifyDeliveryCompleted implements external.Notifier.
func (n *LogNotifier) NotifyDeliveryCompleted(_ context.Context, ev domain.DeliveryCompletedEvent) error {
	fields := []logx.Field{
		logx.String("event_id", ev.EventID.String()),
		logx.Int64("cargo_id", ev.CargoID),
	}
	if ev.DispatcherID != nil {
		fields = append(fields, logx.Int64("dispatcher_id", *ev.DispatcherID))
	}
	n.logger.Info("dispatcher notified", fields...)
	return nil
}

// BrokerNotifier publishes notifications keyed by cargo id so that events of one cargo stay ordered.
type BrokerNotifier struct {
	pub Publisher
}

// NewBrokerNotifier creates a BrokerNotifier over pub.
func NewBrokerNotifier(pub Publisher) *BrokerNotifier {
	return &BrokerNotifier{pub: pub}
}

// NotifyDeliveryCompleted implements external.Notifier.
func (n *BrokerNotifier) NotifyDeliveryCompleted(ctx context.Context, ev domain.DeliveryCompletedEvent) error {
	return n.pub.Publish(ctx, strconv.FormatInt(ev.CargoID, 10), EventDeliveryCompleted, ev)
}
