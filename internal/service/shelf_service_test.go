package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/events"
)

type fakeShelfRepo struct {
	shelves    []domain.Shelf
	items      []domain.ShelfItem
	nextShelf  int64
	nextItemID int64
}

func (f *fakeShelfRepo) Create(_ context.Context, shelf *domain.Shelf) error {
	for _, existing := range f.shelves {
		if existing.AccountID == shelf.AccountID && existing.Name == shelf.Name {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextShelf++
	shelf.ID = f.nextShelf
	f.shelves = append(f.shelves, *shelf)
	return nil
}

func (f *fakeShelfRepo) GetByID(_ context.Context, id int64) (*domain.Shelf, error) {
	for i := range f.shelves {
		if f.shelves[i].ID == id {
			shelf := f.shelves[i]
			return &shelf, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeShelfRepo) ListByAccount(_ context.Context, accountID int64) ([]domain.Shelf, error) {
	var out []domain.Shelf
	for _, shelf := range f.shelves {
		if shelf.AccountID == accountID {
			out = append(out, shelf)
		}
	}
	return out, nil
}

func (f *fakeShelfRepo) AddItem(_ context.Context, item *domain.ShelfItem) error {
	for _, existing := range f.items {
		if existing.ShelfID == item.ShelfID && existing.BookID == item.BookID {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextItemID++
	item.ID = f.nextItemID
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeShelfRepo) GetItem(_ context.Context, shelfID, bookID int64) (*domain.ShelfItem, error) {
	for i := range f.items {
		if f.items[i].ShelfID == shelfID && f.items[i].BookID == bookID {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeShelfRepo) UpdateItem(_ context.Context, item *domain.ShelfItem) error {
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = *item
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeShelfRepo) ListItems(_ context.Context, shelfID int64) ([]domain.ShelfItem, error) {
	var out []domain.ShelfItem
	for _, item := range f.items {
		if item.ShelfID == shelfID {
			out = append(out, item)
		}
	}
	return out, nil
}

func newShelfFixture(t *testing.T) (*ShelfService, *fakeShelfRepo, *fakeBookRepo, *[]events.Event) {
	t.Helper()
	shelfRepo := &fakeShelfRepo{}
	bookRepo := newFakeBookRepo()
	bookRepo.seed(domain.Book{Title: "Книга", Slug: "kniga"})

	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	var published []events.Event
	dispatcher.Subscribe(events.EventBookFinished, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewShelfService(shelfRepo, bookRepo, dispatcher, zap.NewNop())
	return svc, shelfRepo, bookRepo, &published
}

func TestShelf_FinishingEmitsEventOnce(t *testing.T) {
	t.Parallel()

	svc, _, _, published := newShelfFixture(t)
	ctx := context.Background()

	shelf, err := svc.CreateShelf(ctx, 7, "Прочитанное")
	require.NoError(t, err)

	item, err := svc.AddBook(ctx, 7, shelf.ID, 1, domain.ReadingStatusReading)
	require.NoError(t, err)
	require.Nil(t, item.FinishedAt)
	require.Empty(t, *published)

	item, err = svc.SetStatus(ctx, 7, shelf.ID, 1, domain.ReadingStatusFinished)
	require.NoError(t, err)
	require.NotNil(t, item.FinishedAt)
	require.Len(t, *published, 1)
	require.EqualValues(t, 7, (*published)[0].AccountID)

	// Setting FINISHED again must not award twice.
	_, err = svc.SetStatus(ctx, 7, shelf.ID, 1, domain.ReadingStatusFinished)
	require.NoError(t, err)
	require.Len(t, *published, 1)
}

func TestShelf_AddFinishedBookEmitsImmediately(t *testing.T) {
	t.Parallel()

	svc, _, _, published := newShelfFixture(t)
	ctx := context.Background()

	shelf, err := svc.CreateShelf(ctx, 7, "Архив")
	require.NoError(t, err)

	item, err := svc.AddBook(ctx, 7, shelf.ID, 1, domain.ReadingStatusFinished)
	require.NoError(t, err)
	require.NotNil(t, item.FinishedAt)
	require.Len(t, *published, 1)
}

func TestShelf_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newShelfFixture(t)
	ctx := context.Background()

	shelf, err := svc.CreateShelf(ctx, 7, "Моя полка")
	require.NoError(t, err)

	_, err = svc.AddBook(ctx, 8, shelf.ID, 1, domain.ReadingStatusWant)
	require.Error(t, err)

	_, err = svc.ListItems(ctx, 8, shelf.ID)
	require.Error(t, err)
}

func TestShelf_DuplicateBookRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newShelfFixture(t)
	ctx := context.Background()

	shelf, err := svc.CreateShelf(ctx, 7, "Полка")
	require.NoError(t, err)

	_, err = svc.AddBook(ctx, 7, shelf.ID, 1, domain.ReadingStatusWant)
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, 7, shelf.ID, 1, domain.ReadingStatusWant)
	require.Error(t, err)
}
