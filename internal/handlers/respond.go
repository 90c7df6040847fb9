package handlers

import (
	"errors"
	"log"

	"claimbot/internal/apperr"

	"github.com/gofiber/fiber/v3"
)

// failWith maps business errors onto HTTP statuses. Only errors apperr
// marks user-facing carry their message out verbatim; system-side failures
// are logged and answered with a generic body.
func failWith(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidState), errors.Is(err, apperr.ErrCapExceeded):
		status = fiber.StatusConflict
	case errors.Is(err, apperr.ErrValidation):
		status = fiber.StatusBadRequest
	}

	if apperr.IsUserFacing(err) {
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("Internal error: %v", err)
	message := "Service Error"
	switch {
	case errors.Is(err, apperr.ErrConfiguration):
		message = "Service misconfigured, contact an administrator"
	case errors.Is(err, apperr.ErrProvider):
		message = "Upstream service unavailable, try again later"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
