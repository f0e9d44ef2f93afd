package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homegrid/community-service/internal/api/dto"
	"github.com/homegrid/community-service/internal/service"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// AccountHandler serves the one-time token flows.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// RequestPasswordReset handles POST /auth/password/reset/request. The
// response does not reveal whether the address is registered.
func (h *AccountHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.accounts.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "requested"}})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AccountHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.accounts.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResendEmailConfirmation handles POST /auth/email/confirm/request. Like the
// reset request it never reveals whether the address is registered.
func (h *AccountHandler) ResendEmailConfirmation(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.accounts.ResendEmailConfirmation(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "requested"}})
}

// ConfirmEmail handles POST /auth/email/confirm.
func (h *AccountHandler) ConfirmEmail(c *fiber.Ctx) error {
	var req dto.EmailConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.accounts.ConfirmEmail(c.UserContext(), req.Token); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
