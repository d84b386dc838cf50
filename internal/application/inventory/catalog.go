package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/pkg/logger"
)

// CatalogUseCase alta, edición y baja lógica de artículos.
type CatalogUseCase struct {
	repo repository.ArticleRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.ArticleRepository, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, log: log.Component("catalog"), now: time.Now}
}

// List devuelve el catálogo ordenado por SKU.
func (uc *CatalogUseCase) List(ctx context.Context, onlyActive bool) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toArticleResponse(a))
	}
	return out, nil
}

// Save crea el artículo si el SKU no existe o actualiza sus atributos editables.
// Devuelve created=true en el alta.
func (uc *CatalogUseCase) Save(ctx context.Context, in dto.SaveArticleRequest) (*dto.ArticleResponse, bool, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.SKU == "" || in.Nombre == "" {
		return nil, false, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.Tipo == "" {
		in.Tipo = entity.ArticleTypeNew
	}
	if !entity.ValidArticleType(in.Tipo) {
		return nil, false, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Tipo)
	}
	if in.StockSeguridad < 0 || in.LeadTimeDias < 0 {
		return nil, false, fmt.Errorf("%w: valores negativos", domain.ErrInvalidInput)
	}
	if in.PrecioVenta.IsNegative() || (in.UltimoCoste != nil && in.UltimoCoste.IsNegative()) {
		return nil, false, fmt.Errorf("%w: precio o coste negativo", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		initial := int64(0)
		if in.StockInicial != nil {
			initial = *in.StockInicial
		}
		if initial < 0 {
			return nil, false, fmt.Errorf("%w: stock_inicial negativo", domain.ErrInvalidInput)
		}
		cost := decimal.Zero
		if in.UltimoCoste != nil {
			cost = *in.UltimoCoste
		}
		a := &entity.Article{
			SKU:          in.SKU,
			Name:         in.Nombre,
			Type:         in.Tipo,
			Unit:         in.Unidad,
			InitialStock: initial,
			SafetyStock:  in.StockSeguridad,
			LeadTimeDays: in.LeadTimeDias,
			SalePrice:    in.PrecioVenta,
			LastCost:     cost,
			Supplier:     in.Proveedor,
			ImageURL:     in.ImagenURL,
			Active:       true,
			CreatedOn:    uc.now(),
		}
		if err := uc.repo.Create(ctx, a); err != nil {
			return nil, false, err
		}
		uc.log.Info().Str("sku", a.SKU).Int64("stock_inicial", a.InitialStock).Msg("artículo creado")
		return toArticleResponse(a), true, nil
	}

	// stock_inicial queda congelado en el alta
	if in.StockInicial != nil && *in.StockInicial != existing.InitialStock {
		return nil, false, fmt.Errorf("%w: stock_inicial no se puede modificar tras el alta", domain.ErrInvalidInput)
	}
	existing.Name = in.Nombre
	existing.Type = in.Tipo
	existing.Unit = in.Unidad
	existing.SafetyStock = in.StockSeguridad
	existing.LeadTimeDays = in.LeadTimeDias
	existing.SalePrice = in.PrecioVenta
	if in.UltimoCoste != nil {
		existing.LastCost = *in.UltimoCoste
	}
	existing.Supplier = in.Proveedor
	existing.ImageURL = in.ImagenURL
	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	uc.log.Info().Str("sku", existing.SKU).Msg("artículo actualizado")
	return toArticleResponse(existing), false, nil
}

// ToggleActive invierte el flag activo (baja lógica). El histórico se conserva.
func (uc *CatalogUseCase) ToggleActive(ctx context.Context, sku string) (*dto.ArticleResponse, error) {
	a, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, sku)
	}
	a.Active = !a.Active
	if err := uc.repo.SetActive(ctx, sku, a.Active); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sku", sku).Bool("activo", a.Active).Msg("estado de artículo cambiado")
	return toArticleResponse(a), nil
}

// WithClock sustituye el reloj (tests).
func (uc *CatalogUseCase) WithClock(now func() time.Time) *CatalogUseCase {
	uc.now = now
	return uc
}
