package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/application/inventory"
)

// ArticleHandler maneja el catálogo de artículos (protegido).
type ArticleHandler struct {
	uc *inventory.CatalogUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *inventory.CatalogUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogo
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        activos  query  bool  false  "Solo artículos activos"
// @Success      200  {array}   dto.ArticleResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.QueryBool("activos", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o actualizar artículo por SKU
// @Description  stock_inicial solo se fija en el alta; en una edición debe omitirse o coincidir.
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveArticleRequest  true  "Datos del artículo"
// @Success      200   {object}  dto.ArticleResponse
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveArticleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, created, err := h.uc.Save(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Activar / desactivar artículo
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{sku}/toggle [patch]
func (h *ArticleHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.ToggleActive(c.Context(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
