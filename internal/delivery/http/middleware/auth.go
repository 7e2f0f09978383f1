package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agency-service/internal/pkg/auth"
	"github.com/agency-service/internal/pkg/errors"
	"github.com/agency-service/internal/pkg/utils"
)

// AgencyIDKey is the request-local carrying the authenticated agency id.
const AgencyIDKey = "agency_id"

// RequireAuth guards routes behind a valid Bearer session token and stores
// the token's agency id in the request locals.
func RequireAuth(tokens auth.TokenIssuer, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		agencyID, err := tokens.Validate(tokenString)
		if err != nil {
			logger.Debug("Session token rejected", zap.Error(err))
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(AgencyIDKey, agencyID)
		return c.Next()
	}
}

// CallerAgencyID returns the authenticated agency id set by RequireAuth,
// or uuid.Nil when the request is unauthenticated.
func CallerAgencyID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(AgencyIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
