package handlers

import (
	"errors"

	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/services"
	"github.com/gofiber/fiber/v2"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

// mapServiceError translates the service error taxonomy to HTTP statuses:
// validation 400, forbidden 403, not found 404, conflict 409.
func mapServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrIssueNotFound),
		errors.Is(err, services.ErrFlagNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrUserNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrAdminOnly):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrAlreadyFlagged),
		errors.Is(err, services.ErrAlreadyReviewed):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidLatitude),
		errors.Is(err, services.ErrInvalidLongitude),
		errors.Is(err, services.ErrInvalidRadius),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrInvalidReviewAction):
		status, message = fiber.StatusBadRequest, err.Error()
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
