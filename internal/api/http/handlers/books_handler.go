package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reading-service/internal/api/dto"
	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/service"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// BooksHandler exposes catalog endpoints.
type BooksHandler struct {
	catalog *service.CatalogService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(catalogService *service.CatalogService) *BooksHandler {
	return &BooksHandler{catalog: catalogService}
}

// Create handles POST /books.
func (h *BooksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	book, err := h.catalog.CreateBook(c.Context(), service.BookCreateInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bookDetail(book)})
}

// List handles GET /books.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	books, err := h.catalog.ListBooks(c.Context(),
		c.Query("q"),
		c.QueryInt("limit", 20),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return err
	}
	items := make([]dto.BookSummary, 0, len(books))
	for i := range books {
		items = append(items, bookSummary(&books[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /books/:slug.
func (h *BooksHandler) Get(c *fiber.Ctx) error {
	book, err := h.catalog.GetBookBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": bookDetail(book)})
}

func bookSummary(book *domain.Book) dto.BookSummary {
	return dto.BookSummary{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Slug:      book.Slug,
		CreatedAt: book.CreatedAt,
	}
}

func bookDetail(book *domain.Book) dto.BookDetail {
	return dto.BookDetail{
		BookSummary: bookSummary(book),
		Description: book.Description,
	}
}
