package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
)

// fakeBookRepo keeps the catalog in memory and enforces slug uniqueness
// the way the partial unique index does.
type fakeBookRepo struct {
	books      []domain.Book
	nextID     int64
	createHook func(book *domain.Book) error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{nextID: 1}
}

func (f *fakeBookRepo) Create(_ context.Context, book *domain.Book) error {
	if f.createHook != nil {
		if err := f.createHook(book); err != nil {
			return err
		}
	}
	for _, existing := range f.books {
		if existing.Slug != "" && existing.Slug == book.Slug {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	book.ID = f.nextID
	f.nextID++
	f.books = append(f.books, *book)
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	for i := range f.books {
		if f.books[i].ID == id {
			book := f.books[i]
			return &book, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBookRepo) GetBySlug(_ context.Context, slug string) (*domain.Book, error) {
	for i := range f.books {
		if f.books[i].Slug == slug {
			book := f.books[i]
			return &book, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBookRepo) List(_ context.Context, _ string, _, _ int) ([]domain.Book, error) {
	return append([]domain.Book{}, f.books...), nil
}

func (f *fakeBookRepo) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	for _, book := range f.books {
		if book.Slug == slug && book.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookRepo) ListUnslugged(_ context.Context) ([]domain.Book, error) {
	var out []domain.Book
	for _, book := range f.books {
		if book.Slug == "" {
			out = append(out, book)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) UpdateSlug(_ context.Context, id int64, slug string) error {
	for i := range f.books {
		if f.books[i].ID == id {
			f.books[i].Slug = slug
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeBookRepo) seed(book domain.Book) {
	book.ID = f.nextID
	f.nextID++
	f.books = append(f.books, book)
}

func TestCatalog_CreateAssignsTransliteratedSlug(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeBookRepo(), 0, zap.NewNop())

	book, err := svc.CreateBook(context.Background(), BookCreateInput{Title: "Чёрный кот"})
	require.NoError(t, err)
	require.Equal(t, "chyornyy-kot", book.Slug)
}

func TestCatalog_IdenticalTitlesGetDisjointSlugs(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeBookRepo(), 0, zap.NewNop())

	first, err := svc.CreateBook(context.Background(), BookCreateInput{Title: "Книга"})
	require.NoError(t, err)
	second, err := svc.CreateBook(context.Background(), BookCreateInput{Title: "Книга"})
	require.NoError(t, err)

	require.Equal(t, "kniga", first.Slug)
	require.Equal(t, "kniga-2", second.Slug)
}

func TestCatalog_RetriesWhenConcurrentWriterWinsSlug(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	raced := false
	repo.createHook = func(*domain.Book) error {
		// Simulate another worker committing the same slug between the
		// existence probe and our insert.
		if !raced {
			raced = true
			repo.seed(domain.Book{Title: "Книга", Slug: "kniga"})
		}
		return nil
	}
	svc := NewCatalogService(repo, 0, zap.NewNop())

	book, err := svc.CreateBook(context.Background(), BookCreateInput{Title: "Книга"})
	require.NoError(t, err)
	require.Equal(t, "kniga-2", book.Slug)
}

func TestCatalog_BackfillAssignsInIDOrder(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	repo.seed(domain.Book{Title: "Книга"})
	repo.seed(domain.Book{Title: "Книга"})
	repo.seed(domain.Book{Title: "Атлас", Slug: "atlas"})
	svc := NewCatalogService(repo, 0, zap.NewNop())

	assigned, err := svc.BackfillSlugs(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, assigned)
	require.Equal(t, "kniga", repo.books[0].Slug)
	require.Equal(t, "kniga-2", repo.books[1].Slug)

	// Idempotent: a second pass touches nothing.
	assigned, err = svc.BackfillSlugs(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, assigned)
}

func TestCatalog_CreateRequiresTitle(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeBookRepo(), 0, zap.NewNop())
	_, err := svc.CreateBook(context.Background(), BookCreateInput{Title: "   "})
	require.Error(t, err)
	require.False(t, errors.Is(err, pgx.ErrNoRows))
}
