package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/homegrid/community-service/internal/api/dto"
	"github.com/homegrid/community-service/internal/auth"
	"github.com/homegrid/community-service/internal/domain"
	"github.com/homegrid/community-service/internal/service"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// UsersHandler exposes registration, login and profile endpoints.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.accounts.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toUserResponse(user)})
}

// Login handles POST /auth/login. It runs after the authentication filter,
// which has already set the token headers and the principal.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	return h.Me(c)
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principalID, ok := auth.CurrentPrincipal(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.accounts.Get(c.UserContext(), principalID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toUserResponse(user)})
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		EmailConfirmed: user.EmailConfirmed,
	}
}
