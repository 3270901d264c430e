package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reading-service/internal/api/dto"
	"github.com/spec-kit/reading-service/internal/auth"
	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/service"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// ClubsHandler exposes reading club endpoints.
type ClubsHandler struct {
	clubs *service.ClubService
}

// NewClubsHandler constructs handler.
func NewClubsHandler(clubService *service.ClubService) *ClubsHandler {
	return &ClubsHandler{clubs: clubService}
}

// Create handles POST /clubs.
func (h *ClubsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateClubRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	club, err := h.clubs.CreateClub(c.Context(), principal.Account.ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": clubSummary(club)})
}

// List handles GET /clubs.
func (h *ClubsHandler) List(c *fiber.Ctx) error {
	clubs, err := h.clubs.ListClubs(c.Context(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.ClubSummary, 0, len(clubs))
	for i := range clubs {
		items = append(items, clubSummary(&clubs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /clubs/:slug.
func (h *ClubsHandler) Get(c *fiber.Ctx) error {
	club, members, err := h.clubs.GetClub(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	detail := dto.ClubDetail{ClubSummary: clubSummary(club)}
	for i := range members {
		detail.Members = append(detail.Members, dto.ClubMemberSummary{
			AccountID: members[i].AccountID,
			Role:      string(members[i].Role),
			JoinedAt:  members[i].JoinedAt,
		})
	}
	return c.JSON(fiber.Map{"data": detail})
}

// Join handles POST /clubs/:slug/join.
func (h *ClubsHandler) Join(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.clubs.Join(c.Context(), principal.Account.ID, c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Leave handles POST /clubs/:slug/leave.
func (h *ClubsHandler) Leave(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.clubs.Leave(c.Context(), principal.Account.ID, c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func clubSummary(club *domain.Club) dto.ClubSummary {
	return dto.ClubSummary{
		ID:          club.ID,
		Name:        club.Name,
		Slug:        club.Slug,
		Description: club.Description,
		OwnerID:     club.OwnerID,
		CreatedAt:   club.CreatedAt,
	}
}
