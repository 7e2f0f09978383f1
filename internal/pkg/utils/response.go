package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/agency-service/internal/pkg/errors"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   *errors.AppError `json:"error"`
}

func SendSuccess(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendError translates domain errors into the response envelope. Anything
// that is not an AppError is reported as a generic 500 so internal details
// never reach the client.
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Success: false,
			Error:   appErr,
		})
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		details := make(map[string]interface{}, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		appErr := errors.ErrValidation.WithDetails(details)
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Success: false,
			Error:   appErr,
		})
	}

	return c.Status(errors.ErrInternalServer.StatusCode).JSON(ErrorResponse{
		Success: false,
		Error:   errors.ErrInternalServer,
	})
}
