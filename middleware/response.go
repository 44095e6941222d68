package middleware

import (
	"errors"
	"incubator/services"
	"log"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// ServiceErrorResponse maps a service error kind onto its HTTP status
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, services.MessageOf(err), nil)
	case errors.Is(err, services.ErrValidation):
		return JsonResponse(c, fiber.StatusBadRequest, false, services.MessageOf(err), fiber.Map{
			"reason": services.ReasonOf(err),
		})
	default:
		log.Printf("[API] %s %s failed: %v", c.Method(), c.Path(), err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
	}
}
