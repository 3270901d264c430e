package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/repository"
	"github.com/spec-kit/reading-service/internal/slug"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// BookCreateInput carries catalog creation parameters.
type BookCreateInput struct {
	Title       string
	Author      string
	Description string
}

// CatalogService owns the book catalog and its slug assignment.
type CatalogService struct {
	books           repository.BookRepository
	maxSlugAttempts int
	logger          *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(books repository.BookRepository, maxSlugAttempts int, logger *zap.Logger) *CatalogService {
	return &CatalogService{books: books, maxSlugAttempts: maxSlugAttempts, logger: logger}
}

// CreateBook adds a catalog entry with a unique slug derived from the
// title. The slug loop prevents algorithmic collisions; the unique index
// arbitrates concurrent writers, absorbed by one regenerate-and-retry.
func (s *CatalogService) CreateBook(ctx context.Context, input BookCreateInput) (*domain.Book, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	book := &domain.Book{
		Title:       title,
		Author:      strings.TrimSpace(input.Author),
		Description: input.Description,
	}

	for attempt := 0; attempt < 2; attempt++ {
		candidate, err := slug.Generate(ctx, title, s.maxSlugAttempts, s.slugExists(0))
		if err != nil {
			return nil, err
		}
		book.Slug = candidate

		err = s.books.Create(ctx, book)
		if err == nil {
			s.logger.Info("book created",
				zap.Int64("book_id", book.ID), zap.String("slug", book.Slug))
			return book, nil
		}
		if !apperrors.IsUniqueViolation(err) {
			return nil, err
		}
		// Lost a race for the slug; regenerate against fresh state.
	}
	return nil, apperrors.NewConflict("could not assign a unique slug", nil)
}

// GetBookBySlug fetches one catalog entry.
func (s *CatalogService) GetBookBySlug(ctx context.Context, slugStr string) (*domain.Book, error) {
	book, err := s.books.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks searches the catalog.
func (s *CatalogService) ListBooks(ctx context.Context, search string, limit, offset int) ([]domain.Book, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.books.List(ctx, search, limit, offset)
}

// BackfillSlugs assigns slugs to catalog rows that never received one,
// in ascending id order. Re-running is a no-op for already-slugged rows.
func (s *CatalogService) BackfillSlugs(ctx context.Context) (int, error) {
	unslugged, err := s.books.ListUnslugged(ctx)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for i := range unslugged {
		book := &unslugged[i]
		candidate, err := slug.Generate(ctx, book.Title, s.maxSlugAttempts, s.slugExists(book.ID))
		if err != nil {
			return assigned, err
		}
		if err := s.books.UpdateSlug(ctx, book.ID, candidate); err != nil {
			return assigned, err
		}
		assigned++
	}
	if assigned > 0 {
		s.logger.Info("backfilled book slugs", zap.Int("count", assigned))
	}
	return assigned, nil
}

func (s *CatalogService) slugExists(excludeID int64) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return s.books.SlugExists(ctx, candidate, excludeID)
	}
}
