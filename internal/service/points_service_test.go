package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/events"
)

type fakeLedger struct {
	entries []domain.PointEvent
	nextID  int64
}

func (f *fakeLedger) Append(_ context.Context, event *domain.PointEvent) error {
	f.nextID++
	event.ID = f.nextID
	event.CreatedAt = time.Now()
	f.entries = append(f.entries, *event)
	return nil
}

func (f *fakeLedger) ListByAccount(_ context.Context, accountID int64, _, _ int) ([]domain.PointEvent, error) {
	var out []domain.PointEvent
	for _, entry := range f.entries {
		if entry.AccountID == accountID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeLedger) TotalForAccount(_ context.Context, accountID int64) (int, error) {
	total := 0
	for _, entry := range f.entries {
		if entry.AccountID == accountID {
			total += entry.Points
		}
	}
	return total, nil
}

func TestPoints_AwardedForReadingActivity(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	svc := NewPointsService(ledger, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID:        "e1",
		Type:      events.EventBookFinished,
		AccountID: 7,
		Payload:   events.BookFinishedPayload{BookID: 3, ShelfID: 1},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID:        "e2",
		Type:      events.EventClubJoined,
		AccountID: 7,
		Payload:   events.ClubJoinedPayload{ClubID: 9},
	}))

	entries, total, err := svc.Ledger(ctx, 7, 20, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, 35, total)

	require.Equal(t, domain.PointKindBookFinished, entries[0].Kind)
	require.Equal(t, 25, entries[0].Points)
	require.NotNil(t, entries[0].SourceID)
	require.EqualValues(t, 3, *entries[0].SourceID)

	require.Equal(t, domain.PointKindClubJoined, entries[1].Kind)
	require.Equal(t, 10, entries[1].Points)
}

func TestPoints_IgnoresMalformedPayload(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	svc := NewPointsService(ledger, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID:        "bad",
		Type:      events.EventBookFinished,
		AccountID: 7,
		Payload:   "not a payload",
	}))
	require.Empty(t, ledger.entries)
}
