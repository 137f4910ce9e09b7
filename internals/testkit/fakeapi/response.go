package fakeapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Success Response (default 200)
func success(c *fiber.Ctx, message string, data interface{}) error {
	return successWithCode(c, fiber.StatusOK, message, data)
}

// ✅ Success Response dengan custom code (contoh 201 untuk created)
func successWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"code":    code,
		"status":  "success",
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(code).JSON(body)
}

// ❌ Error Response sederhana
func fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// ❌ Error validasi (validator.v10): field → tag
func validationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fail(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"code":    fiber.StatusBadRequest,
		"status":  "error",
		"message": "Validasi gagal",
		"errors":  errorsMap,
	})
}
