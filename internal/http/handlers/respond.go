package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pahnawa/internal/domain"
)

// Every failure body is {success:false, error}. Status codes distinguish
// caller mistakes from server faults.
func fail(c *fiber.Ctx, err error) error {
	return failMsg(c, statusFor(err), err.Error())
}

func failMsg(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductUnavailable):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidSignature):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
