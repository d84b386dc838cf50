package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/envos-stock/internal/application/billing"
	"github.com/jhoicas/envos-stock/internal/application/dto"
)

// BillingHandler staging de facturación, overrides e informe PDF (protegido).
type BillingHandler struct {
	staging *billing.StagingUseCase
	report  *billing.ReportUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(staging *billing.StagingUseCase, report *billing.ReportUseCase) *BillingHandler {
	return &BillingHandler{staging: staging, report: report}
}

// Get godoc
// @Summary      Staging de facturación del mes
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {object}  dto.BillingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/billing/{month} [get]
func (h *BillingHandler) Get(c *fiber.Ctx) error {
	out, err := h.staging.Get(c.Context(), c.Params("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetOverride godoc
// @Summary      Fijar cantidad facturable de una línea
// @Description  Solo en el mes en curso y si no está cerrado. No toca el ledger.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetOverrideRequest  true  "load_uid, sku, cantidad"
// @Success      200   {object}  dto.BillingLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billing/overrides [put]
func (h *BillingHandler) SetOverride(c *fiber.Ctx) error {
	var in dto.SetOverrideRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.staging.SetOverride(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ClearOverride godoc
// @Summary      Quitar override (vuelve a la cantidad original)
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        load_uid  path  string  true  "Ref. de carga"
// @Param        sku       path  string  true  "SKU"
// @Success      200  {object}  dto.BillingLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billing/overrides/{load_uid}/{sku} [delete]
func (h *BillingHandler) ClearOverride(c *fiber.Ctx) error {
	out, err := h.staging.ClearOverride(c.Context(), c.Params("load_uid"), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe mensual de consumo en PDF
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/billing/{month}/report.pdf [get]
func (h *BillingHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.MonthlyReport(c.Context(), c.Params("month"), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
