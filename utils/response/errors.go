package response

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandlerConfig controls how unexpected errors are rendered
type ErrorHandlerConfig struct {
	// Production hides internal error messages from clients
	Production bool
	// Report receives every error rendered as a 500. May be nil.
	Report func(c *fiber.Ctx, err error)
}

// ErrorHandler is the single formatting step for errors returned by handlers
func ErrorHandler(cfg ErrorHandlerConfig) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		var validationErrs validator.ValidationErrors

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return NotFound(c, "")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return Conflict(c, "A record with the same unique value already exists", "")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return BadRequest(c, "Referenced record does not exist")
		case errors.As(err, &validationErrs):
			return ValidationError(c, validationErrs)
		case errors.As(err, &fiberErr):
			return Error(c, fiberErr.Code, fiberErr.Message, codeFor(fiberErr.Code))
		case errors.Is(err, context.DeadlineExceeded):
			return ServiceUnavailable(c, "Database is busy, please retry")
		}

		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		if cfg.Report != nil {
			cfg.Report(c, err)
		}

		if cfg.Production {
			return InternalServerError(c, "")
		}
		return InternalServerError(c, err.Error())
	}
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}
