package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIError carries an HTTP status with a user-facing message, plus an
// optional remediation hint shown alongside it.
type APIError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

func NewAPIErrorWithHint(code int, message, hint string) *APIError {
	return &APIError{Code: code, Message: message, Hint: hint}
}

// ErrorHandlerMiddleware converts handler errors into the JSON envelope so a
// failed request never leaks a stack trace or kills the process.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			body := fiber.Map{
				"success": false,
				"message": apiErr.Message,
			}
			if apiErr.Hint != "" {
				body["hint"] = apiErr.Hint
			}
			return ctx.Status(apiErr.Code).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
