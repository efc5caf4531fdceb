package testlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/testutil/testlog"
)

func TestRecorder_WithKeepsBaseFields(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	log := rec.Logger().With(logx.Component("bid"))

	log.Info("bid accepted", logx.Int64("bid_id", 5))
	log.Warn("bid accepted")

	require.Equal(t, 2, rec.Count("bid accepted"))
	e, ok := rec.Find("bid accepted")
	require.True(t, ok)
	require.Equal(t, "info", e.Level)

	v, ok := e.Field("component")
	require.True(t, ok)
	require.Equal(t, "bid", v)
	v, ok = e.Field("bid_id")
	require.True(t, ok)
	require.Equal(t, int64(5), v)

	require.False(t, rec.Has("missing"))
}
