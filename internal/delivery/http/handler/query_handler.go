package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/agency-service/internal/pkg/errors"
	"github.com/agency-service/internal/pkg/utils"
	"github.com/agency-service/internal/usecase"
)

// QueryHandler serves the read-side agency queries.
type QueryHandler struct {
	queryUC *usecase.AgencyQueryUseCase
	logger  *zap.Logger
}

func NewQueryHandler(queryUC *usecase.AgencyQueryUseCase, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		queryUC: queryUC,
		logger:  logger,
	}
}

// Locations godoc
// @Summary List all agency locations
// @Description Returns the public projection (id, name, email, contact, expertise, location) of every registered agency.
// @Tags Query
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/agency/locations [get]
func (h *QueryHandler) Locations(c *fiber.Ctx) error {
	result, err := h.queryUC.Locations(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, "Agency locations retrieved successfully", result)
}

// Associations godoc
// @Summary Get an agency with its resources and disasters
// @Description Resolves the agency by name and joins the resources it owns with the disasters it participates in.
// @Tags Query
// @Produce json
// @Param name path string true "Agency name"
// @Success 200 {object} utils.SuccessResponse{data=dto.AssociationsResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/agency/{name}/associations [get]
func (h *QueryHandler) Associations(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return utils.SendError(c, errors.ErrValidation)
	}

	result, err := h.queryUC.ByAgencyName(c.Context(), name)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, "Agency resources and disasters retrieved successfully", result)
}
