package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reading-service/internal/api/dto"
	"github.com/spec-kit/reading-service/internal/auth"
	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/service"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// ShelvesHandler exposes shelf endpoints.
type ShelvesHandler struct {
	shelves *service.ShelfService
}

// NewShelvesHandler constructs handler.
func NewShelvesHandler(shelfService *service.ShelfService) *ShelvesHandler {
	return &ShelvesHandler{shelves: shelfService}
}

// Create handles POST /shelves.
func (h *ShelvesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateShelfRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	shelf, err := h.shelves.CreateShelf(c.Context(), principal.Account.ID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shelfSummary(shelf)})
}

// List handles GET /shelves.
func (h *ShelvesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	shelves, err := h.shelves.ListShelves(c.Context(), principal.Account.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ShelfSummary, 0, len(shelves))
	for i := range shelves {
		items = append(items, shelfSummary(&shelves[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddItem handles POST /shelves/:id/items.
func (h *ShelvesHandler) AddItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	shelfID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AddShelfItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BookID <= 0 {
		return apperrors.NewValidationError("book_id required", nil)
	}

	item, err := h.shelves.AddBook(c.Context(), principal.Account.ID, shelfID, req.BookID, domain.ReadingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shelfItemSummary(item)})
}

// UpdateItem handles PATCH /shelves/:id/items/:bookID.
func (h *ShelvesHandler) UpdateItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	shelfID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	bookID, err := pathID(c, "bookID")
	if err != nil {
		return err
	}
	var req dto.UpdateShelfItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.shelves.SetStatus(c.Context(), principal.Account.ID, shelfID, bookID, domain.ReadingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shelfItemSummary(item)})
}

// ListItems handles GET /shelves/:id/items.
func (h *ShelvesHandler) ListItems(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	shelfID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.shelves.ListItems(c.Context(), principal.Account.ID, shelfID)
	if err != nil {
		return err
	}
	summaries := make([]dto.ShelfItemSummary, 0, len(items))
	for i := range items {
		summaries = append(summaries, shelfItemSummary(&items[i]))
	}
	return c.JSON(fiber.Map{"data": summaries})
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}

func shelfSummary(shelf *domain.Shelf) dto.ShelfSummary {
	return dto.ShelfSummary{ID: shelf.ID, Name: shelf.Name, CreatedAt: shelf.CreatedAt}
}

func shelfItemSummary(item *domain.ShelfItem) dto.ShelfItemSummary {
	return dto.ShelfItemSummary{
		BookID:     item.BookID,
		Status:     string(item.Status),
		AddedAt:    item.AddedAt,
		FinishedAt: item.FinishedAt,
	}
}
