package apperr

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error in the common response envelope.
// Tagged domain errors keep their status and category; anything else is
// a 500 with no internal detail leaked to the caller.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *Error
	if errors.As(err, &ae) {
		return c.Status(ae.Status).JSON(fiber.Map{
			"success": false,
			"error":   ae.Code,
			"message": ae.Message,
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		// A body cut off at the server limit is an oversized upload and
		// keeps the upload error shape.
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return c.Status(fe.Code).JSON(fiber.Map{
				"success": false,
				"error":   "upload_error",
				"message": "File is too large",
			})
		}
		return c.Status(fe.Code).JSON(fiber.Map{
			"success": false,
			"error":   "request_error",
			"message": fe.Message,
		})
	}

	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "internal_error",
		"message": "An unexpected server error occurred",
	})
}
