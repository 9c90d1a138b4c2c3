package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/metrics"
)

// EventHandlerDependencies holds what event handler registration needs
type EventHandlerDependencies struct {
	EventBus      event.Bus
	Subscriptions metrics.SubscriptionCounter
	Registerer    prometheus.Registerer
}

// RegisterEventHandlers subscribes the metrics collector to the bus and
// exposes the live subscription gauge.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Subscriptions != nil {
		reg := deps.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		if err := metrics.RegisterSubscriptionGauge(reg, deps.Subscriptions); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedRegisterSubsGauge, err)
		}
	}

	return nil
}
