package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/agency-service/internal/delivery/http/middleware"
	"github.com/agency-service/internal/pkg/errors"
	"github.com/agency-service/internal/pkg/utils"
	"github.com/agency-service/internal/pkg/validator"
	"github.com/agency-service/internal/usecase"
	"github.com/agency-service/internal/usecase/dto"
)

// AgencyHandler serves the agency lifecycle endpoints.
type AgencyHandler struct {
	agencyUC *usecase.AgencyUseCase
	logger   *zap.Logger
}

func NewAgencyHandler(agencyUC *usecase.AgencyUseCase, logger *zap.Logger) *AgencyHandler {
	return &AgencyHandler{
		agencyUC: agencyUC,
		logger:   logger,
	}
}

// Register godoc
// @Summary Register a new agency
// @Description Creates an agency account. The contact address is geocoded and the first candidate's coordinates become the stored location; an unresolvable address rejects the registration.
// @Tags Agency
// @Accept json
// @Produce json
// @Param request body dto.RegisterAgencyRequest true "Registration payload"
// @Success 201 {object} utils.SuccessResponse{data=dto.AgencyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/agency/register [post]
func (h *AgencyHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterAgencyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	agency, err := h.agencyUC.Register(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusCreated, "Agency registered successfully", agency)
}

// Login godoc
// @Summary Authenticate an agency
// @Description Verifies the credentials and returns a session token bound to the agency id, valid for seven days.
// @Tags Agency
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} utils.SuccessResponse{data=dto.LoginResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/agency/login [post]
func (h *AgencyHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.agencyUC.Login(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, "Login successful", result)
}

// ChangePassword godoc
// @Summary Change the agency password
// @Description Replaces the stored password hash after verifying the old password. Previously issued tokens remain valid until expiry.
// @Tags Agency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Password change payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/agency/password [put]
func (h *AgencyHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	callerID := middleware.CallerAgencyID(c)
	if err := h.agencyUC.ChangePassword(c.Context(), callerID, req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, "Password changed successfully", nil)
}

// UpdateProfile godoc
// @Summary Update the agency profile
// @Description Applies fill-if-provided changes. A supplied contact address is re-geocoded; a supplied explicit GeoJSON Point overrides the geocoded location.
// @Tags Agency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} utils.SuccessResponse{data=dto.AgencyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/agency/profile [put]
func (h *AgencyHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	callerID := middleware.CallerAgencyID(c)
	agency, err := h.agencyUC.UpdateProfile(c.Context(), callerID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, "Profile updated successfully", agency)
}
