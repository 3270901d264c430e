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

// AuthHandler exposes registration, login, and profile endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	points *service.PointsService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, pointsService *service.PointsService) *AuthHandler {
	return &AuthHandler{auth: authService, points: pointsService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, token, err := h.auth.Register(c.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": accountSummary(account),
			"auth":    dto.AuthResponse{Token: token},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, token, err := h.auth.Login(c.Context(), req.Login, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": accountSummary(account),
			"auth":    dto.AuthResponse{Token: token},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.Context(), principal.Account.ID, principal.Token); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	total, err := h.points.Total(c.Context(), principal.Account.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProfileResponse{
		Account: accountSummary(principal.Account),
		Points:  total,
	}})
}

func accountSummary(account *domain.Account) dto.AccountSummary {
	return dto.AccountSummary{
		ID:       account.ID,
		Email:    account.Email,
		Username: account.Username,
		Premium:  account.Premium,
	}
}
