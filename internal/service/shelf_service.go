package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/events"
	"github.com/spec-kit/reading-service/internal/repository"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// ShelfService manages per-account shelves and reading progress.
type ShelfService struct {
	shelves    repository.ShelfRepository
	books      repository.BookRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewShelfService builds the service.
func NewShelfService(shelves repository.ShelfRepository, books repository.BookRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ShelfService {
	return &ShelfService{shelves: shelves, books: books, dispatcher: dispatcher, logger: logger}
}

// CreateShelf adds a named shelf for the account.
func (s *ShelfService) CreateShelf(ctx context.Context, accountID int64, name string) (*domain.Shelf, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	shelf := &domain.Shelf{AccountID: accountID, Name: name}
	if err := s.shelves.Create(ctx, shelf); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("shelf name already used", nil)
		}
		return nil, err
	}
	return shelf, nil
}

// ListShelves returns the account's shelves.
func (s *ShelfService) ListShelves(ctx context.Context, accountID int64) ([]domain.Shelf, error) {
	return s.shelves.ListByAccount(ctx, accountID)
}

// AddBook places a book on one of the account's shelves.
func (s *ShelfService) AddBook(ctx context.Context, accountID, shelfID, bookID int64, status domain.ReadingStatus) (*domain.ShelfItem, error) {
	if status == "" {
		status = domain.ReadingStatusWant
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown reading status", map[string]any{"status": string(status)})
	}

	shelf, err := s.ownedShelf(ctx, accountID, shelfID)
	if err != nil {
		return nil, err
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", nil)
		}
		return nil, err
	}

	item := &domain.ShelfItem{ShelfID: shelf.ID, BookID: bookID, Status: status}
	if status == domain.ReadingStatusFinished {
		now := time.Now()
		item.FinishedAt = &now
	}
	if err := s.shelves.AddItem(ctx, item); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("book already on shelf", nil)
		}
		return nil, err
	}

	if status == domain.ReadingStatusFinished {
		s.publishFinished(ctx, accountID, item)
	}
	return item, nil
}

// SetStatus updates the reading status of a shelved book. Transitioning
// into FINISHED stamps the finish time and emits a book_finished event.
func (s *ShelfService) SetStatus(ctx context.Context, accountID, shelfID, bookID int64, status domain.ReadingStatus) (*domain.ShelfItem, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown reading status", map[string]any{"status": string(status)})
	}

	if _, err := s.ownedShelf(ctx, accountID, shelfID); err != nil {
		return nil, err
	}
	item, err := s.shelves.GetItem(ctx, shelfID, bookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shelf item", nil)
		}
		return nil, err
	}

	finishing := status == domain.ReadingStatusFinished && item.Status != domain.ReadingStatusFinished
	item.Status = status
	if finishing {
		now := time.Now()
		item.FinishedAt = &now
	}
	if err := s.shelves.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if finishing {
		s.publishFinished(ctx, accountID, item)
	}
	return item, nil
}

// ListItems returns the contents of one of the account's shelves.
func (s *ShelfService) ListItems(ctx context.Context, accountID, shelfID int64) ([]domain.ShelfItem, error) {
	if _, err := s.ownedShelf(ctx, accountID, shelfID); err != nil {
		return nil, err
	}
	return s.shelves.ListItems(ctx, shelfID)
}

func (s *ShelfService) ownedShelf(ctx context.Context, accountID, shelfID int64) (*domain.Shelf, error) {
	shelf, err := s.shelves.GetByID(ctx, shelfID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shelf", nil)
		}
		return nil, err
	}
	if shelf.AccountID != accountID {
		return nil, apperrors.NewForbidden("shelf belongs to another account")
	}
	return shelf, nil
}

func (s *ShelfService) publishFinished(ctx context.Context, accountID int64, item *domain.ShelfItem) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBookFinished,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   events.BookFinishedPayload{BookID: item.BookID, ShelfID: item.ShelfID},
	})
}
