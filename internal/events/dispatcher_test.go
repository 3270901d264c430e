package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher(zap.NewNop())

	var got []Event
	d.Subscribe(EventBookFinished, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventClubJoined, func(_ context.Context, e Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventBookFinished, AccountID: 7})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.EqualValues(t, 7, got[0].AccountID)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher(zap.NewNop())

	called := 0
	d.Subscribe(EventClubJoined, func(context.Context, Event) error {
		called++
		return errors.New("boom")
	})
	d.Subscribe(EventClubJoined, func(context.Context, Event) error {
		called++
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e2", Type: EventClubJoined})
	require.NoError(t, err)
	require.Equal(t, 2, called)
}
