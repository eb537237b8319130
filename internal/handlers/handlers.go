package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cradlelog/cradle-backend/internal/dto"
)

var validate = validator.New()

// parseAndValidate decodes the JSON body into req and runs struct validation.
// When ok is false the 400 response has already been written and the handler
// should return resp.
func parseAndValidate(c *fiber.Ctx, req interface{}) (ok bool, resp error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed: " + err.Error(),
		})
	}
	return true, nil
}
