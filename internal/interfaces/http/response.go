package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
)

var validate = validator.New()

// bindJSON parsea el cuerpo y aplica las etiquetas validate del DTO.
// Si falla ya ha escrito la respuesta 400; el handler debe devolver el error tal cual.
func bindJSON(c *fiber.Ctx, v interface{}) (bool, error) {
	if err := c.BodyParser(v); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeInvalidBody, Message: "cuerpo inválido"})
	}
	if err := validate.Struct(v); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeValidation, Message: err.Error()})
	}
	return true, nil
}

// errorStatus traduce un error de dominio a status HTTP y código estable.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable, dto.CodeRetryable
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.CodeNotFound
	case errors.Is(err, domain.ErrPeriodClosed):
		return fiber.StatusConflict, dto.CodePeriodClosed
	case errors.Is(err, domain.ErrHistoricalPeriod):
		return fiber.StatusConflict, dto.CodeHistorical
	case errors.Is(err, domain.ErrPendingDuplicates):
		return fiber.StatusConflict, dto.CodeDuplicates
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.CodeDuplicate
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.CodeConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.CodeForbidden
	default:
		return fiber.StatusInternalServerError, dto.CodeInternal
	}
}

// writeError responde con el cuerpo de error que corresponde a err.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}

	var pending *domain.PendingDuplicatesError
	if errors.As(err, &pending) {
		return c.Status(status).JSON(dto.PendingDuplicatesResponse{
			Code: code, Message: msg, Month: pending.Month, Count: pending.Count,
		})
	}
	var batch *domain.BatchError
	if errors.As(err, &batch) {
		return c.Status(status).JSON(dto.BatchErrorResponse{
			Code: code, Message: msg, RefCarga: batch.RefCarga, Index: batch.Index,
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
