package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/notify"
	"cargo-platform-go/internal/testutil/testlog"
)

type recordingPublisher struct {
	key, eventType string
	v              any
	err            error
}

func (p *recordingPublisher) Publish(_ context.Context, key, eventType string, v any) error {
	p.key, p.eventType, p.v = key, eventType, v
	return p.err
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	dispatcher := int64(2)
	ev := domain.DeliveryCompletedEvent{EventID: uuid.New(), CargoID: 5, DispatcherID: &dispatcher}

	require.NoError(t, notify.NewLogNotifier(rec.Logger()).NotifyDeliveryCompleted(context.Background(), ev))

	e, ok := rec.Find("dispatcher notified")
	require.True(t, ok)
	v, ok := e.Field("dispatcher_id")
	require.True(t, ok)
	require.Equal(t, int64(2), v)
}

func TestBrokerNotifier(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	ev := domain.DeliveryCompletedEvent{EventID: uuid.New(), CargoID: 42}

	require.NoError(t, notify.NewBrokerNotifier(pub).NotifyDeliveryCompleted(context.Background(), ev))
	require.Equal(t, "42", pub.key)
	require.Equal(t, notify.EventDeliveryCompleted, pub.eventType)
	require.Equal(t, ev, pub.v)

	pub.err = errors.New("broker down")
	require.ErrorIs(t, notify.NewBrokerNotifier(pub).NotifyDeliveryCompleted(context.Background(), ev), pub.err)
}
