package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/events"
	"github.com/spec-kit/reading-service/internal/repository"
)

// Points awarded per activity kind.
const (
	pointsBookFinished = 25
	pointsClubJoined   = 10
)

// PointsService turns reading activity events into ledger entries and
// answers ledger queries.
type PointsService struct {
	ledger     repository.PointEventRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPointsService creates the service.
func NewPointsService(ledger repository.PointEventRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PointsService {
	return &PointsService{ledger: ledger, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (s *PointsService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventBookFinished, s.handleBookFinished)
	s.dispatcher.Subscribe(events.EventClubJoined, s.handleClubJoined)
}

// Ledger returns the account's recent point events with the running total.
func (s *PointsService) Ledger(ctx context.Context, accountID int64, limit, offset int) ([]domain.PointEvent, int, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := s.ledger.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledger.TotalForAccount(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Total returns the account's point balance.
func (s *PointsService) Total(ctx context.Context, accountID int64) (int, error) {
	return s.ledger.TotalForAccount(ctx, accountID)
}

func (s *PointsService) handleBookFinished(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BookFinishedPayload)
	if !ok {
		s.logger.Warn("unexpected payload for book_finished", zap.String("event_id", event.ID))
		return nil
	}
	entry := &domain.PointEvent{
		AccountID: event.AccountID,
		Kind:      domain.PointKindBookFinished,
		Points:    pointsBookFinished,
		SourceID:  &payload.BookID,
	}
	return s.ledger.Append(ctx, entry)
}

func (s *PointsService) handleClubJoined(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ClubJoinedPayload)
	if !ok {
		s.logger.Warn("unexpected payload for club_joined", zap.String("event_id", event.ID))
		return nil
	}
	entry := &domain.PointEvent{
		AccountID: event.AccountID,
		Kind:      domain.PointKindClubJoined,
		Points:    pointsClubJoined,
		SourceID:  &payload.ClubID,
	}
	return s.ledger.Append(ctx, entry)
}
