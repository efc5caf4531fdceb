package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"cargo-platform-go/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal     prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal        prometheus.Counter     `name:"gateway_retries_total"`
	BidsAcceptedTotal          prometheus.Counter     `name:"bids_accepted_total"`
	DeliveriesCompletedTotal   prometheus.Counter     `name:"deliveries_completed_total"`
	DispatcherNotificationsVec *prometheus.CounterVec `name:"dispatcher_notifications_total"`
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	var out metricsOut
	var err error

	if out.RateLimitExceededTotal, err = registerOrReuse(reg, "rate_limit_exceeded_total",
		metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.GatewayRetriesTotal, err = registerOrReuse(reg, "gateway_retries_total",
		metrics.NewGatewayRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.BidsAcceptedTotal, err = registerOrReuse(reg, "bids_accepted_total",
		metrics.NewBidsAcceptedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.DeliveriesCompletedTotal, err = registerOrReuse(reg, "deliveries_completed_total",
		metrics.NewDeliveriesCompletedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.DispatcherNotificationsVec, err = registerOrReuse(reg, "dispatcher_notifications_total",
		metrics.NewDispatcherNotificationsTotal()); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}

// registerOrReuse returns the already registered collector when one with the same descriptor exists.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, name string, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
