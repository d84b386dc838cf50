package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/envos-stock/internal/application/closing"
)

// ClosingHandler estado y cierre de meses.
type ClosingHandler struct {
	uc *closing.UseCase
}

// NewClosingHandler construye el handler.
func NewClosingHandler(uc *closing.UseCase) *ClosingHandler {
	return &ClosingHandler{uc: uc}
}

// List godoc
// @Summary      Meses conocidos y su estado
// @Tags         closings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClosingResponse
// @Router       /api/closings [get]
func (h *ClosingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de cierre y checklist de un mes
// @Tags         closings
// @Security     Bearer
// @Produce      json
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {object}  dto.ClosingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/closings/{month} [get]
func (h *ClosingHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.Context(), c.Params("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar mes
// @Description  Requiere rol admin. Se rechaza si quedan cargas duplicadas en el mes.
// @Tags         closings
// @Security     Bearer
// @Produce      json
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {object}  dto.ClosingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.PendingDuplicatesResponse
// @Router       /api/closings/{month}/close [post]
func (h *ClosingHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.Close(c.Context(), c.Params("month"), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
