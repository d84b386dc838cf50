package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para el catálogo (DIP).
// GetBySKU devuelve (nil, nil) si no existe.
type ArticleRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*entity.Article, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Article, error)
	Create(ctx context.Context, a *entity.Article) error
	// Update persiste los atributos editables; nunca sku, stock_inicial ni fecha_alta.
	Update(ctx context.Context, a *entity.Article) error
	SetActive(ctx context.Context, sku string, active bool) error
	UpdateLastCost(ctx context.Context, sku string, cost decimal.Decimal) error
}
