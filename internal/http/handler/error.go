package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"reviewdesk/internal/http/middleware"
	"reviewdesk/internal/service"
	"reviewdesk/internal/storage"
	"reviewdesk/internal/workflow"
)

// errorPayload is the JSON body of every API error.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return id
}

// writeError sends an errorPayload. message is shown to users and must not carry internal detail.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// routeErrors covers failures raised by fiber itself rather than by a handler.
var routeErrors = map[int]errorEnvelope{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"UPLOAD_TOO_LARGE", "upload exceeds the size limit"},
}

// ErrorHandler turns errors that escaped a handler into the standard envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if env, ok := routeErrors[fe.Code]; ok {
				return writeError(c, fe.Code, env.Code, env.Message)
			}
		}
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// classify maps a desk error onto an HTTP status and error code.
// Review service failures are reported as gateway errors.
func classify(err error) (int, string) {
	var se *workflow.StatusError
	switch {
	case errors.Is(err, workflow.ErrValidation),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, storage.ErrInvalidName):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, workflow.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, workflow.ErrPayload):
		return fiber.StatusBadGateway, "UPSTREAM_BAD_PAYLOAD"
	case errors.As(err, &se):
		return fiber.StatusBadGateway, "UPSTREAM_ERROR"
	case errors.Is(err, service.ErrArchiveDisabled):
		return fiber.StatusNotFound, "ARCHIVE_DISABLED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
