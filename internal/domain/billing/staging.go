// Package billing calcula el staging de facturación mensual a partir de los
// consumos de las cargas y la capa de overrides. No toca el ledger.
package billing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// Billable devuelve la cantidad facturable de una línea y si está modificada.
// Modificada solo cuando existe override y difiere de la cantidad original.
func Billable(raw int64, overrides entity.BillingOverrides, key entity.OverrideKey) (int64, bool) {
	if v, ok := overrides[key]; ok {
		return v, v != raw
	}
	return raw, false
}

// BuildLines genera una línea por (carga, sku) con cantidad > 0 para las cargas
// del mes. Orden: fecha, ref_carga, sku.
func BuildLines(month string, loads []entity.OperationalLoad, articles map[string]entity.Article, overrides entity.BillingOverrides) []entity.BillingLine {
	inMonth := make([]entity.OperationalLoad, 0, len(loads))
	for _, l := range loads {
		if l.Month() == month {
			inMonth = append(inMonth, l)
		}
	}
	sort.SliceStable(inMonth, func(i, j int) bool {
		if !inMonth[i].Date.Equal(inMonth[j].Date) {
			return inMonth[i].Date.Before(inMonth[j].Date)
		}
		return inMonth[i].RefCarga < inMonth[j].RefCarga
	})

	var lines []entity.BillingLine
	for _, l := range inMonth {
		for _, sku := range l.SortedSKUs() {
			raw := l.Consumptions[sku]
			if raw <= 0 {
				continue
			}
			key := entity.OverrideKey{LoadUID: l.RefCarga, SKU: sku}
			qty, modified := Billable(raw, overrides, key)
			art := articles[sku]
			name := art.Name
			if name == "" {
				name = sku
			}
			lines = append(lines, entity.BillingLine{
				LoadUID:     l.RefCarga,
				Date:        l.Date.Format("2006-01-02"),
				Equipment:   l.Equipment,
				Plate:       l.Plate,
				SKU:         sku,
				ArticleName: name,
				RawQty:      raw,
				BillableQty: qty,
				UnitPrice:   art.SalePrice,
				Subtotal:    art.SalePrice.Mul(decimal.NewFromInt(qty)),
				Modified:    modified,
			})
		}
	}
	return lines
}

// Summarize agrega las líneas por artículo. El total del informe es la suma de
// los subtotales por artículo.
func Summarize(month string, lines []entity.BillingLine) entity.BillingSummary {
	sum := entity.BillingSummary{Month: month, Lines: lines, Total: decimal.Zero}
	bySKU := make(map[string]*entity.BillingArticleTotal)
	var order []string
	for _, ln := range lines {
		t, ok := bySKU[ln.SKU]
		if !ok {
			t = &entity.BillingArticleTotal{SKU: ln.SKU, ArticleName: ln.ArticleName, UnitPrice: ln.UnitPrice, Subtotal: decimal.Zero}
			bySKU[ln.SKU] = t
			order = append(order, ln.SKU)
		}
		t.Quantity += ln.BillableQty
		sum.TotalQuantity += ln.BillableQty
	}
	sort.Strings(order)
	for _, sku := range order {
		t := bySKU[sku]
		t.Subtotal = t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
		sum.Total = sum.Total.Add(t.Subtotal)
		sum.Articles = append(sum.Articles, *t)
	}
	return sum
}

// Stage compone BuildLines y Summarize.
func Stage(month string, loads []entity.OperationalLoad, articles []entity.Article, overrides entity.BillingOverrides) entity.BillingSummary {
	bySKU := make(map[string]entity.Article, len(articles))
	for _, a := range articles {
		bySKU[a.SKU] = a
	}
	return Summarize(month, BuildLines(month, loads, bySKU, overrides))
}

// HasLine indica si la clave corresponde a una línea facturable del staging.
func HasLine(lines []entity.BillingLine, key entity.OverrideKey) (entity.BillingLine, bool) {
	for _, ln := range lines {
		if ln.LoadUID == key.LoadUID && ln.SKU == key.SKU {
			return ln, true
		}
	}
	return entity.BillingLine{}, false
}
