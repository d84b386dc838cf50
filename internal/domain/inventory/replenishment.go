package inventory

import (
	"math"
	"sort"
	"time"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// ReplenishmentWindowWeeks semanas de consumo usadas para la media.
const ReplenishmentWindowWeeks = 4

// Replenishment sugiere pedidos para los artículos activos sin stock o por debajo
// del mínimo. El consumo medio se calcula con las salidas (manuales y de cargas)
// de las últimas ReplenishmentWindowWeeks semanas hasta now.
//
//	objetivo = stock_seguridad + ceil(consumo_diario × lead_time_dias)
//	sugerido = max(0, objetivo - stock_actual)
func Replenishment(items []entity.InventoryItem, movements []entity.Movement, now time.Time) []entity.ReplenishmentSuggestion {
	from := now.AddDate(0, 0, -7*ReplenishmentWindowWeeks)
	consumed := make(map[string]int64)
	for _, m := range movements {
		if m.Type != entity.MovementOut || m.Class() == entity.ClassRegularization {
			continue
		}
		if m.CreatedAt.Before(from) || m.CreatedAt.After(now) {
			continue
		}
		consumed[m.SKU] += m.Quantity
	}

	var out []entity.ReplenishmentSuggestion
	for _, it := range items {
		if !it.Article.Active {
			continue
		}
		if it.Status != entity.StatusNoStock && it.Status != entity.StatusReorder {
			continue
		}
		weekly := float64(consumed[it.Article.SKU]) / ReplenishmentWindowWeeks
		daily := weekly / 7
		target := it.Article.SafetyStock + int64(math.Ceil(daily*float64(it.Article.LeadTimeDays)))
		suggested := target - it.CurrentStock
		if suggested < 0 {
			suggested = 0
		}
		out = append(out, entity.ReplenishmentSuggestion{
			SKU:            it.Article.SKU,
			Name:           it.Article.Name,
			Supplier:       it.Article.Supplier,
			CurrentStock:   it.CurrentStock,
			SafetyStock:    it.Article.SafetyStock,
			WeeklyAvg:      math.Round(weekly*100) / 100,
			DailyAvg:       math.Round(daily*100) / 100,
			LeadTimeDays:   it.Article.LeadTimeDays,
			TargetStock:    target,
			SuggestedOrder: suggested,
			Status:         it.Status,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SuggestedOrder != out[j].SuggestedOrder {
			return out[i].SuggestedOrder > out[j].SuggestedOrder
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}
