package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

// StatusFor código HTTP de cada tipo de error de dominio.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindAccessDenied:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindAlreadyExists, domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindDeadlineExceeded:
		return fiber.StatusGatewayTimeout
	case domain.KindExhaustedRetries:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con dto.ErrorResponse{Code: tipo, Message}. Los errores >= 500 se
// registran con su causa; al cliente no se le expone la causa de un error interno.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status := StatusFor(kind)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).
			Str("kind", string(kind)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error al atender la petición")
		if kind != domain.KindExhaustedRetries && kind != domain.KindDeadlineExceeded {
			msg = "error interno, intente más tarde"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: string(kind), Message: msg})
}

// LocalLogger key del logger de la petición en c.Locals.
const LocalLogger = "logger"

// RequestLogger deja log en c.Locals para writeError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		c.Locals(LocalLogger, log)
		return c.Next()
	}
}

func requestLogger(c *fiber.Ctx) *logger.Logger {
	if log, ok := c.Locals(LocalLogger).(*logger.Logger); ok {
		return log
	}
	return logger.Nop()
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: string(domain.KindValidation), Message: msg})
}

// ErrorHandler handler de errores de Fiber: *fiber.Error conserva su código, el resto
// se clasifica como error de dominio (los >= 500 quedan registrados en log).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP", Message: fe.Message})
		}
		if _, ok := c.Locals(LocalLogger).(*logger.Logger); !ok {
			c.Locals(LocalLogger, log)
		}
		return writeError(c, err)
	}
}
