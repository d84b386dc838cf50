package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/inventory"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

// StatusUseCase vistas de solo lectura recalculadas bajo demanda a partir de
// una instantánea de catálogo y ledger.
type StatusUseCase struct {
	articleRepo repository.ArticleRepository
	movRepo     repository.MovementRepository
	now         func() time.Time
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(articleRepo repository.ArticleRepository, movRepo repository.MovementRepository) *StatusUseCase {
	return &StatusUseCase{articleRepo: articleRepo, movRepo: movRepo, now: time.Now}
}

// WithClock sustituye el reloj (tests).
func (uc *StatusUseCase) WithClock(now func() time.Time) *StatusUseCase {
	uc.now = now
	return uc
}

func (uc *StatusUseCase) snapshot(ctx context.Context) ([]entity.InventoryItem, []entity.Movement, error) {
	articles, err := uc.articleRepo.List(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, nil, err
	}
	ledger := derefMovements(movs)
	return inventory.Reconcile(derefArticles(articles), ledger), ledger, nil
}

// Inventory devuelve el stock calculado por artículo. Los contadores del
// resumen se calculan antes de filtrar por situación.
func (uc *StatusUseCase) Inventory(ctx context.Context, f dto.InventoryFilterRequest) (*dto.InventoryResponse, error) {
	if f.Situacion != "" && !validStatus(f.Situacion) {
		return nil, fmt.Errorf("%w: situación %q", domain.ErrInvalidInput, f.Situacion)
	}
	items, _, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if f.Activos {
		items = inventory.FilterActive(items)
	}

	resp := &dto.InventoryResponse{
		Items:      make([]dto.InventoryItemResponse, 0, len(items)),
		Resumen:    inventory.StatusCounts(items),
		ValorTotal: decimal.Zero,
	}
	for _, it := range items {
		if f.Situacion != "" && it.Status != f.Situacion {
			continue
		}
		resp.Items = append(resp.Items, toInventoryItemResponse(it))
		if it.CurrentStock > 0 {
			resp.ValorTotal = resp.ValorTotal.Add(it.StockValue)
		}
	}
	return resp, nil
}

// Replenishment devuelve las sugerencias de pedido con prioridad (1 = más urgente).
func (uc *StatusUseCase) Replenishment(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, ledger, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := inventory.Replenishment(items, ledger, uc.now())
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(suggestions))
	for i, s := range suggestions {
		out = append(out, dto.ReplenishmentSuggestionDTO{
			SKU:            s.SKU,
			Nombre:         s.Name,
			Proveedor:      s.Supplier,
			StockActual:    s.CurrentStock,
			StockSeguridad: s.SafetyStock,
			ConsumoSemanal: s.WeeklyAvg,
			ConsumoDiario:  s.DailyAvg,
			LeadTimeDias:   s.LeadTimeDays,
			StockObjetivo:  s.TargetStock,
			PedidoSugerido: s.SuggestedOrder,
			Situacion:      s.Status,
			Prioridad:      i + 1,
		})
	}
	return out, nil
}

func validStatus(s string) bool {
	switch s {
	case entity.StatusInStock, entity.StatusReorder, entity.StatusCritical, entity.StatusNoStock:
		return true
	}
	return false
}
