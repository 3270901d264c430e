package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reading-service/internal/api/dto"
	"github.com/spec-kit/reading-service/internal/auth"
	"github.com/spec-kit/reading-service/internal/service"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// PointsHandler exposes the gamification ledger.
type PointsHandler struct {
	points *service.PointsService
}

// NewPointsHandler constructs handler.
func NewPointsHandler(pointsService *service.PointsService) *PointsHandler {
	return &PointsHandler{points: pointsService}
}

// List handles GET /points.
func (h *PointsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entries, total, err := h.points.Ledger(c.Context(), principal.Account.ID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	resp := dto.PointsResponse{Total: total, Events: make([]dto.PointEventSummary, 0, len(entries))}
	for i := range entries {
		resp.Events = append(resp.Events, dto.PointEventSummary{
			Kind:      string(entries[i].Kind),
			Points:    entries[i].Points,
			SourceID:  entries[i].SourceID,
			CreatedAt: entries[i].CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}
