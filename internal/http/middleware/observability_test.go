package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/testutil/testlog"
)

func TestObservability_UsesRoutePatternForLabels(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	rec := testlog.New()

	r := chi.NewRouter()
	r.Use(Observability(rec.Logger(), m))
	r.Get("/cargos/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/cargos/123", nil)
	req = req.WithContext(WithActor(req.Context(), 9))
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/cargos/{id}", "204")))
	require.Equal(t, uint64(1), histogramCount(t, m.duration, http.MethodGet, "/cargos/{id}", "204"))

	e, ok := rec.Find("http request")
	require.True(t, ok)
	user, ok := e.Field("user_id")
	require.True(t, ok)
	require.Equal(t, int64(9), user)
}

func TestObservability_ImplicitOK(t *testing.T) {
	t.Parallel()

	m := NewHTTPMetrics(nil)
	h := Observability(nil, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/raw", nil))

	require.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/raw", "200")))
}

func histogramCount(t *testing.T, hv *prometheus.HistogramVec, method, path, status string) uint64 {
	t.Helper()

	obs, err := hv.GetMetricWithLabelValues(method, path, status)
	require.NoError(t, err)

	metric, ok := obs.(prometheus.Metric)
	require.True(t, ok, "must implement prometheus.Metric")

	m := &dto.Metric{}
	require.NoError(t, metric.Write(m))

	h := m.GetHistogram()
	require.NotNil(t, h)
	return h.GetSampleCount()
}
