// error_utils.go
package utils

import (
	"log"

	"attendance-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// HandleAppError แปลง error จาก service เป็น HTTP response ตาม Kind
func HandleAppError(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	status := StatusFor(appErr.Kind)
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}

	message := appErr.Message
	if appErr.Kind == models.KindValidation && appErr.Err != nil {
		message = appErr.Error()
	}
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Code:    appErr.Code,
		Message: message,
	})
}

func StatusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindConflict:
		return fiber.StatusConflict
	case models.KindValidation:
		return fiber.StatusBadRequest
	case models.KindUnauthorized:
		return fiber.StatusUnauthorized
	case models.KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
