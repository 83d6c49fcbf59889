package http_handler

import (
	"errors"
	"strconv"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
)

const (
	msgInternal       = "Internal Server Error"
	msgStreamFailed   = "Failed to create zip file"
	msgNotAuthed      = "Not authenticated"
	msgInvalidPayload = "Invalid request body"
)

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type rateLimitResponse struct {
	errorResponse
	RetryAfterSeconds int `json:"retryAfterSeconds"`
	Limit             int `json:"limit"`
	WindowSeconds     int `json:"windowSeconds"`
}

func sendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Error: true, Message: message})
}

// writeError maps an error kind to its status code. Unknown errors are logged and
// reported with a generic message.
func (s *Server) writeError(c *fiber.Ctx, err error) error {
	var rl *port.RateLimitError
	if errors.As(err, &rl) {
		retry := rl.RetryAfterSeconds()
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
		return c.Status(fiber.StatusTooManyRequests).JSON(rateLimitResponse{
			errorResponse:     errorResponse{Error: true, Message: rl.Error()},
			RetryAfterSeconds: retry,
			Limit:             rl.Limit,
			WindowSeconds:     int(rl.Window.Seconds()),
		})
	}

	var pe *port.Error
	if errors.As(err, &pe) {
		return sendError(c, statusFor(pe.Kind), pe.Message)
	}

	if errors.Is(err, port.ErrStreamFailure) {
		logger.Errorw("Archive stream failed before first byte", "path", c.Path(), "error", err.Error())
		return sendError(c, fiber.StatusInternalServerError, msgStreamFailed)
	}

	logger.Errorw("Request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return sendError(c, fiber.StatusInternalServerError, msgInternal)
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, port.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(kind, port.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(kind, port.ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(kind, port.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(kind, port.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(kind, port.ErrGone):
		return fiber.StatusGone
	case errors.Is(kind, port.ErrUnsupportedMedia):
		return fiber.StatusUnsupportedMediaType
	default:
		return fiber.StatusInternalServerError
	}
}
