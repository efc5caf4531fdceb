package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/metrics"
)

func TestCounters_RegisterUnderStableNames(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	rl := metrics.NewRateLimitExceededTotal()
	gr := metrics.NewGatewayRetriesTotal()
	ba := metrics.NewBidsAcceptedTotal()
	dc := metrics.NewDeliveriesCompletedTotal()
	dn := metrics.NewDispatcherNotificationsTotal()
	reg.MustRegister(rl, gr, ba, dc, dn)

	ba.Inc()
	dn.WithLabelValues("sent").Inc()
	dn.WithLabelValues("failed").Add(2)

	require.Equal(t, float64(1), testutil.ToFloat64(ba))
	require.Equal(t, float64(2), testutil.ToFloat64(dn.WithLabelValues("failed")))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.ElementsMatch(t, []string{
		"rate_limit_exceeded_total",
		"gateway_retries_total",
		"bids_accepted_total",
		"deliveries_completed_total",
		"dispatcher_notifications_total",
	}, names)
}
