package http

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain"
)

// LoadSheetParser convierte una hoja de cálculo en registros de carga.
type LoadSheetParser interface {
	Parse(r io.Reader) ([]dto.SyncLoadRecord, error)
}

// LoadHandler ingestión y consulta de cargas operativas.
type LoadHandler struct {
	uc     *inventory.IngestLoadsUseCase
	parser LoadSheetParser
}

// NewLoadHandler construye el handler. parser puede ser nil si no se admite XLSX.
func NewLoadHandler(uc *inventory.IngestLoadsUseCase, parser LoadSheetParser) *LoadHandler {
	return &LoadHandler{uc: uc, parser: parser}
}

// List godoc
// @Summary      Listar cargas
// @Tags         loads
// @Security     Bearer
// @Produce      json
// @Param        month       query  string  false  "YYYY-MM"
// @Param        duplicados  query  bool    false  "Solo cargas marcadas como duplicadas"
// @Success      200  {array}   dto.LoadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/loads [get]
func (h *LoadHandler) List(c *fiber.Ctx) error {
	var f dto.LoadFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeInvalidBody, Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sync godoc
// @Summary      Sincronizar lote de cargas
// @Description  Todo o nada: si un registro falla se revierte el lote completo.
// @Tags         loads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.SyncLoadRecord  true  "Lote de cargas"
// @Success      200   {object}  dto.SyncResponse
// @Failure      400   {object}  dto.BatchErrorResponse
// @Failure      409   {object}  dto.BatchErrorResponse
// @Router       /api/sync/loads [post]
func (h *LoadHandler) Sync(c *fiber.Ctx) error {
	var records []dto.SyncLoadRecord
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeInvalidBody, Message: "se espera un array de cargas"})
	}
	return h.sync(c, records)
}

// SyncXLSX godoc
// @Summary      Sincronizar cargas desde hoja de cálculo
// @Tags         loads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Libro .xlsx con la hoja de cargas"
// @Success      200   {object}  dto.SyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sync/loads/xlsx [post]
func (h *LoadHandler) SyncXLSX(c *fiber.Ctx) error {
	if h.parser == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: dto.CodeInternal, Message: "importación xlsx no disponible"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeInvalidBody, Message: "campo file requerido"})
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeValidation, Message: "solo se admiten ficheros .xlsx"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("abrir fichero subido: %w", err))
	}
	defer f.Close()

	records, err := h.parser.Parse(f)
	if err != nil {
		return writeError(c, err)
	}
	return h.sync(c, records)
}

func (h *LoadHandler) sync(c *fiber.Ctx, records []dto.SyncLoadRecord) error {
	for i := range records {
		if err := validate.Struct(records[i]); err != nil {
			return writeError(c, &domain.BatchError{
				RefCarga: records[i].RefCarga,
				Index:    i,
				Err:      fmt.Errorf("%w: %v", domain.ErrInvalidInput, err),
			})
		}
	}
	out, err := h.uc.Sync(c.Context(), records)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
