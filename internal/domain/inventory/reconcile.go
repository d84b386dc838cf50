// Package inventory contiene el motor de conciliación de stock: funciones puras
// sobre una instantánea del catálogo y del ledger.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// Classify asigna la situación de stock. Gana la primera regla que se cumple.
func Classify(current, safety int64) string {
	switch {
	case current <= 0:
		return entity.StatusNoStock
	case current <= safety:
		return entity.StatusReorder
	default:
		return entity.StatusInStock
	}
}

// Reconcile calcula el InventoryItem de cada artículo a partir del ledger.
// Los movimientos de SKU ausentes del catálogo se ignoran. El orden de los
// movimientos no influye en el resultado.
func Reconcile(articles []entity.Article, movements []entity.Movement) []entity.InventoryItem {
	idx := make(map[string]int, len(articles))
	items := make([]entity.InventoryItem, len(articles))
	for i, a := range articles {
		idx[a.SKU] = i
		items[i].Article = a
	}

	for _, m := range movements {
		i, ok := idx[m.SKU]
		if !ok {
			continue
		}
		it := &items[i]
		class := m.Class()
		if m.Type == entity.MovementIn {
			it.TotalIn += m.Quantity
			if class == entity.ClassRegularization {
				it.TotalRegularizedIn += m.Quantity
			}
			continue
		}
		it.TotalOut += m.Quantity
		switch class {
		case entity.ClassLoadOut:
			it.TotalLoadOut += m.Quantity
		case entity.ClassRegularization:
			it.TotalRegularizedOut += m.Quantity
		default:
			it.TotalManualOut += m.Quantity
		}
	}

	for i := range items {
		it := &items[i]
		it.CurrentStock = it.Article.InitialStock + it.TotalIn - it.TotalOut
		it.Status = Classify(it.CurrentStock, it.Article.SafetyStock)
		it.StockValue = it.Article.LastCost.Mul(decimal.NewFromInt(it.CurrentStock))
	}
	return items
}

// CurrentStock stock actual de un único artículo.
func CurrentStock(a entity.Article, movements []entity.Movement) int64 {
	return Reconcile([]entity.Article{a}, movements)[0].CurrentStock
}

// StatusCounts cuenta artículos por situación. Incluye todas las situaciones,
// también las que tienen cero artículos.
func StatusCounts(items []entity.InventoryItem) map[string]int {
	counts := map[string]int{
		entity.StatusInStock:  0,
		entity.StatusReorder:  0,
		entity.StatusCritical: 0,
		entity.StatusNoStock:  0,
	}
	for _, it := range items {
		counts[it.Status]++
	}
	return counts
}

// FilterActive devuelve solo los items de artículos activos.
func FilterActive(items []entity.InventoryItem) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if it.Article.Active {
			out = append(out, it)
		}
	}
	return out
}
