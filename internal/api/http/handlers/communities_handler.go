package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homegrid/community-service/internal/api/dto"
	"github.com/homegrid/community-service/internal/auth"
	"github.com/homegrid/community-service/internal/service"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// CommunitiesHandler exposes community management endpoints. Admin-only
// routes rely on the ownership guard having run.
type CommunitiesHandler struct {
	communities *service.CommunityService
}

// NewCommunitiesHandler constructs handler.
func NewCommunitiesHandler(communities *service.CommunityService) *CommunitiesHandler {
	return &CommunitiesHandler{communities: communities}
}

// Create handles POST /communities.
func (h *CommunitiesHandler) Create(c *fiber.Ctx) error {
	principalID, ok := auth.CurrentPrincipal(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	community, err := h.communities.Create(c.UserContext(), principalID, req.Name, req.Address)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CommunityResponse{
		ID:      community.ID,
		Name:    community.Name,
		Address: community.Address,
	}})
}

// AddAdmin handles POST /communities/:communityId/admins.
func (h *CommunitiesHandler) AddAdmin(c *fiber.Ctx) error {
	principalID, _ := auth.CurrentPrincipal(c)
	var req dto.AddAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	communityID := c.Params(auth.CommunityIDParam)
	if err := h.communities.AddAdmin(c.UserContext(), principalID, communityID, req.UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddAmenity handles POST /communities/:communityId/amenities.
func (h *CommunitiesHandler) AddAmenity(c *fiber.Ctx) error {
	var req dto.AddAmenityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	amenity, err := h.communities.AddAmenity(c.UserContext(), c.Params(auth.CommunityIDParam), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.AmenityResponse{
		ID:          amenity.ID,
		CommunityID: amenity.CommunityID,
		Name:        amenity.Name,
		Description: amenity.Description,
	}})
}
