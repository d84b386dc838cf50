package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/application/inventory"
)

// InventoryHandler expone el stock calculado y la reposición (protegido).
type InventoryHandler struct {
	uc *inventory.StatusUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StatusUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Inventory godoc
// @Summary      Inventario calculado por artículo
// @Description  stockActual = stock_inicial + Σ ENTRADA − Σ SALIDA, con situación y contadores.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        activos    query  bool    false  "Solo artículos activos"
// @Param        situacion  query  string  false  "Con stock | Pedir a proveedor | Sin stock"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) Inventory(c *fiber.Ctx) error {
	var f dto.InventoryFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeInvalidBody, Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.Inventory(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Sugerencias de pedido a proveedor
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.uc.Replenishment(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
